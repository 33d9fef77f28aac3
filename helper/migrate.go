// Package helper runs the ledger schema migrations against the write database.
package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"hotelledger/config"
	"hotelledger/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type Action string

const (
	ActionUp     Action = "up"
	ActionStepUp Action = "step-up"
	ActionDown   Action = "down"
	ActionDrop   Action = "drop"
)

var errUnknownAction = errors.New("unknown migration action")

// connectionString builds the golang-migrate DSN for the write node.
func connectionString(cfg *config.Config) string {
	extra := url.Values{}

	if cfg.DB.Postgres.MigrationTable != "" {
		extra.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	return postgres.DSN(cfg.DB.Postgres.Write, cfg.DB.Postgres.Prefix, extra)
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationSource, connectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one migration action and logs the schema version it leaves behind.
func Runner(cfg *config.Config, action Action) error {
	switch action {
	case ActionUp, ActionStepUp, ActionDown, ActionDrop:
	default:
		return fmt.Errorf("%w: %s", errUnknownAction, action)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDown:
		err = mig.Steps(-1)
	case ActionDrop:
		err = mig.Down()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, verr := mig.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading schema version: %w", verr)
	}

	log.Info().Str("action", string(action)).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, ActionStepUp)
}

func Down(cfg *config.Config) error {
	return Runner(cfg, ActionDown)
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, ActionDrop)
}
