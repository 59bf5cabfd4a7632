package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "facultyboard"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/facultyboard"
	ConfigFileName     = "config.yaml"
	PeriodsDBFileName  = "timetables.db"
	EnvFileName        = ".env"
	Version            = "v0.1.0"

	// TimeFormat is the clock format used by the period table (HH:MM)
	TimeFormat = "15:04"

	// FacultyIDPrefix prefixes every generated faculty id (fac-008)
	FacultyIDPrefix = "fac-"
	// FacultyIDWidth is the zero padding applied to sequential ids
	FacultyIDWidth = 3

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "timetables-"
	BackupFileSuffix = ".db"

	// Storage backends
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendJSON     = "json"
	// KeyringDSN selects the PostgreSQL connection string stored in the OS keyring
	KeyringDSN = "keyring"

	// Id schemes
	IDSchemeSequence = "sequence"
	IDSchemeUUID     = "uuid"
)

// Session States
const (
	StateOverview SessionState = iota
	StateFaculty
	StateTimetable
	StateEditFaculty
	StateEditPeriod
	StatePickSubstitute
	StatePickFaculty
	StateConfirmDelete
	StateConfirmDeletePeriod
	StateConfirmRegenerate
)

// MainViews are the tab-cycled views in display order.
var MainViews = []SessionState{StateOverview, StateFaculty, StateTimetable}
