package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migrator manages database migrations embedded in the binary
type Migrator struct {
	databaseURL string
	logger      zerolog.Logger
}

// NewMigrator creates a new migrator for a postgres:// URL
func NewMigrator(databaseURL string, logger zerolog.Logger) *Migrator {
	return &Migrator{
		databaseURL: databaseURL,
		logger:      logger,
	}
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	mg, err := migrate.NewWithSourceInstance("iofs", source, m.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrator: %w", err)
	}
	return mg, nil
}

func (m *Migrator) close(mg *migrate.Migrate) {
	sourceErr, dbErr := mg.Close()
	if sourceErr != nil {
		m.logger.Warn().Err(sourceErr).Msg("Failed to close migration source")
	}
	if dbErr != nil {
		m.logger.Warn().Err(dbErr).Msg("Failed to close migration database")
	}
}

// Up applies all pending migrations
func (m *Migrator) Up() error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer m.close(mg)

	if err := mg.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info().Msg("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}

	version, _, _ := mg.Version()
	m.logger.Info().Uint("version", version).Msg("Database migrations applied")
	return nil
}

// Down rolls back the given number of migrations
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migrate down: steps must be > 0")
	}

	mg, err := m.open()
	if err != nil {
		return err
	}
	defer m.close(mg)

	if err := mg.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	m.logger.Info().Int("steps", steps).Msg("Database migrations rolled back")
	return nil
}
