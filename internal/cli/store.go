package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/facultyboard/internal/config"
	"github.com/julianstephens/facultyboard/internal/constants"
	"github.com/julianstephens/facultyboard/internal/keyring"
	"github.com/julianstephens/facultyboard/internal/storage"
	"github.com/julianstephens/facultyboard/internal/storage/postgres"
	"github.com/julianstephens/facultyboard/internal/storage/sqlite"
)

// OpenStore builds the period repository a resolved --db value names. The
// store is not initialized or loaded.
func OpenStore(backend config.Backend) (storage.PeriodRepository, error) {
	switch backend.Kind {
	case constants.BackendMemory:
		return storage.NewMemoryStore(), nil
	case constants.BackendJSON:
		return storage.NewJSONStore(backend.Target), nil
	case constants.BackendSQLite:
		return sqlite.NewStore(backend.Target), nil
	case constants.BackendPostgres:
		if backend.Target == "" {
			// The keyring is the one place a password may live.
			connStr, err := keyring.GetConnectionString()
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string in the keyring; run '%s connection set' first", constants.AppName)
			}
			if err != nil {
				return nil, err
			}
			return postgres.New(connStr), nil
		}
		if _, err := postgres.ValidateConnString(backend.Target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; use --db keyring or keep the password in ~/.pgpass or PGPASSWORD", err)
			}
			return nil, err
		}
		return postgres.New(backend.Target), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend.Kind)
}
