package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/facultyboard/internal/cli"
	"github.com/julianstephens/facultyboard/internal/config"
	"github.com/julianstephens/facultyboard/internal/constants"
)

type InitCmd struct {
	Force      bool `help:"Force reset by deleting the existing timetable database before initialization."`
	SaveConfig bool `help:"Write the effective settings to config.yaml in the config directory." name:"save-config"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := os.MkdirAll(ctx.ConfigDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	switch ctx.Backend.Kind {
	case constants.BackendMemory:
		fmt.Fprintln(os.Stderr, "Note: timetables are kept in memory; pass --db to persist them.")
	case constants.BackendPostgres:
		ctx.Println("Initialized facultyboard storage in PostgreSQL")
	default:
		ctx.Printf("Initialized facultyboard storage at: %s\n", ctx.Store.GetConfigPath())
	}

	if c.SaveConfig {
		if err := config.Save(ctx.ConfigDir, ctx.Config); err != nil {
			return err
		}
		ctx.Printf("Saved settings to: %s\n", config.Path(ctx.ConfigDir))
	}
	return nil
}

// reset removes the file behind a SQLite or JSON backend.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if ctx.Backend.Kind != constants.BackendSQLite && ctx.Backend.Kind != constants.BackendJSON {
		return fmt.Errorf("--force only applies to file backed storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release file locks
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
