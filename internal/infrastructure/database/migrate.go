package database

import (
	"context"
	"embed"
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	apperrors "github.com/manorfm/oauthstore/internal/domain/errors"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrator creates and drops the OAuth tables and their lookup indexes.
// It opens its own connection from a postgres:// URL so closing it never
// touches the application's pool.
type Migrator struct {
	databaseURL string
	log         *zap.Logger
}

// NewMigrator creates a migrator for the database at databaseURL
func NewMigrator(databaseURL string, log *zap.Logger) *Migrator {
	return &Migrator{
		databaseURL: databaseURL,
		log:         log,
	}
}

// Prepare applies every pending migration
func (m *Migrator) Prepare(ctx context.Context) error {
	latest, err := latestVersion()
	if err != nil {
		return apperrors.NewMigrationError("failed to read migration source", err)
	}
	return m.run(ctx, "prepare", latest, func(mg *migrate.Migrate) error {
		return mg.Up()
	})
}

// Revert rolls back every applied migration, dropping each index before its table
func (m *Migrator) Revert(ctx context.Context) error {
	return m.run(ctx, "revert", 0, func(mg *migrate.Migrate) error {
		return mg.Down()
	})
}

// Version returns the applied schema version. A database with no
// migrations applied reports version 0.
func (m *Migrator) Version() (uint, bool, error) {
	mg, err := m.open()
	if err != nil {
		return 0, false, err
	}
	defer m.close(mg)

	version, dirty, err := mg.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperrors.NewMigrationError("failed to read schema version", err)
	}
	return version, dirty, nil
}

// Force records version as applied and clears the dirty flag left by a
// failed migration. It runs no SQL.
func (m *Migrator) Force(version int) error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer m.close(mg)

	if err := mg.Force(version); err != nil {
		return apperrors.NewMigrationError("failed to force schema version", err)
	}
	m.log.Info("Forced migration version", zap.Int("version", version))
	return nil
}

func (m *Migrator) run(ctx context.Context, op string, target uint, fn func(mg *migrate.Migrate) error) error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer m.close(mg)

	done := make(chan error, 1)
	go func() {
		done <- fn(mg)
	}()

	interrupted, err := await(ctx, done, func() { mg.GracefulStop <- true })
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info("Schema already up to date", zap.String("op", op))
		return nil
	}
	// A graceful stop makes Up and Down return nil, so only the schema
	// version tells a finished run from one cut short.
	if interrupted && (err != nil || !m.reached(mg, target)) {
		m.log.Warn("Migration interrupted", zap.String("op", op), zap.Error(ctx.Err()))
		return apperrors.NewMigrationError(op+" interrupted", ctx.Err())
	}
	if err != nil {
		m.log.Error("Migration failed", zap.String("op", op), zap.Error(err))
		return apperrors.NewMigrationError(op+" failed", err)
	}

	m.log.Info("Migrations completed successfully", zap.String("op", op))
	return nil
}

// await waits for the result on done. When ctx ends first, stop is called
// and the result is still awaited so a run that finished is not discarded.
func await(ctx context.Context, done <-chan error, stop func()) (bool, error) {
	select {
	case err := <-done:
		return false, err
	case <-ctx.Done():
		stop()
		return true, <-done
	}
}

// reached reports whether the schema sits cleanly at target. Target 0 means
// no migration applied.
func (m *Migrator) reached(mg *migrate.Migrate, target uint) bool {
	version, dirty, err := mg.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return target == 0
	}
	return err == nil && !dirty && version == target
}

// latestVersion is the highest version among the embedded migrations
func latestVersion() (uint, error) {
	entries, err := fs.ReadDir(migrationsFS, migrationsDir)
	if err != nil {
		return 0, err
	}
	var latest uint
	for _, entry := range entries {
		mig, err := source.Parse(entry.Name())
		if err != nil {
			return 0, err
		}
		latest = max(latest, mig.Version)
	}
	return latest, nil
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, migrationsDir)
	if err != nil {
		return nil, apperrors.NewMigrationError("failed to open migration source", err)
	}

	mg, err := migrate.NewWithSourceInstance("iofs", src, m.databaseURL)
	if err != nil {
		_ = src.Close()
		return nil, apperrors.NewMigrationError("failed to create migrate instance", err)
	}
	mg.Log = &migrateLogger{log: m.log.Sugar()}
	return mg, nil
}

func (m *Migrator) close(mg *migrate.Migrate) {
	srcErr, dbErr := mg.Close()
	if srcErr != nil {
		m.log.Warn("Error closing migration source", zap.Error(srcErr))
	}
	if dbErr != nil {
		m.log.Warn("Error closing migration database", zap.Error(dbErr))
	}
}

// migrateLogger adapts zap to migrate.Logger
type migrateLogger struct {
	log *zap.SugaredLogger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.log.Infof(format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
