package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/facultyboard/internal/constants"
)

// File mirrors config.yaml. Every key can also be given as a flag or
// environment variable, which take precedence.
type File struct {
	DB       string `yaml:"db,omitempty"`
	Roster   string `yaml:"roster,omitempty"`
	IDScheme string `yaml:"id_scheme,omitempty"`
	Seed     int64  `yaml:"seed,omitempty"`
	Debug    bool   `yaml:"debug,omitempty"`
}

// Backend is a resolved --db value.
type Backend struct {
	Kind   string // one of the constants.Backend* values
	Target string // file path or connection string; empty for memory and keyring
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{constants.EnvFileName}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Path returns the location of config.yaml inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.ConfigFileName)
}

// Load reads config.yaml from configDir. A missing file yields a zero File.
func Load(configDir string) (File, error) {
	var f File
	data, err := os.ReadFile(Path(configDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return f, fmt.Errorf("failed to parse %s: %w", Path(configDir), err)
	}
	return f, f.Validate()
}

// Save writes f to configDir/config.yaml, creating the directory.
func Save(configDir string, f File) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return os.WriteFile(Path(configDir), data, 0600)
}

// Merge returns f with every non-zero field of overrides applied.
func (f File) Merge(overrides File) File {
	if overrides.DB != "" {
		f.DB = overrides.DB
	}
	if overrides.Roster != "" {
		f.Roster = overrides.Roster
	}
	if overrides.IDScheme != "" {
		f.IDScheme = overrides.IDScheme
	}
	if overrides.Seed != 0 {
		f.Seed = overrides.Seed
	}
	f.Debug = f.Debug || overrides.Debug
	return f
}

func (f File) Validate() error {
	switch f.IDScheme {
	case "", constants.IDSchemeSequence, constants.IDSchemeUUID:
	default:
		return fmt.Errorf("invalid id_scheme %q (want %s or %s)", f.IDScheme, constants.IDSchemeSequence, constants.IDSchemeUUID)
	}
	return nil
}

// ResolveBackend interprets a --db value:
//
//	""            in-memory timetables
//	"sqlite"      <configDir>/timetables.db
//	"keyring"     PostgreSQL, connection string from the OS keyring
//	postgres://…  PostgreSQL (a key=value DSN with host= also works)
//	*.json        JSON file
//	anything else a SQLite file path
func ResolveBackend(db, configDir string) (Backend, error) {
	db = strings.TrimSpace(db)
	switch {
	case db == "" || db == constants.BackendMemory:
		return Backend{Kind: constants.BackendMemory}, nil
	case db == constants.BackendSQLite:
		return Backend{Kind: constants.BackendSQLite, Target: filepath.Join(configDir, constants.PeriodsDBFileName)}, nil
	case db == constants.KeyringDSN:
		return Backend{Kind: constants.BackendPostgres}, nil
	case strings.HasPrefix(db, "postgres://"), strings.HasPrefix(db, "postgresql://"), strings.Contains(db, "host="):
		return Backend{Kind: constants.BackendPostgres, Target: db}, nil
	}

	path, err := ExpandHome(db)
	if err != nil {
		return Backend{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return Backend{Kind: constants.BackendJSON, Target: path}, nil
	}
	return Backend{Kind: constants.BackendSQLite, Target: path}, nil
}
