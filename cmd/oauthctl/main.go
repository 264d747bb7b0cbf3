package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/manorfm/oauthstore/internal/infrastructure/config"
	"github.com/manorfm/oauthstore/internal/infrastructure/database"
	"github.com/manorfm/oauthstore/internal/infrastructure/repository"
	"go.uber.org/zap"
)

// Options is the oauthctl command tree
type Options struct {
	Migrate        MigrateCommand        `command:"migrate" description:"Manage the OAuth schema"`
	Client         ClientCommand         `command:"client" description:"Manage OAuth clients"`
	User           UserCommand           `command:"user" description:"Manage users"`
	ResourceServer ResourceServerCommand `command:"resource-server" description:"Manage resource server credentials"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[command] [OPTIONS]"

	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// app carries what every command needs
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &app{cfg: cfg, logger: logger}, nil
}

// run sets up the app and a context cancelled by SIGINT or SIGTERM, then calls fn
func run(fn func(ctx context.Context, a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fn(ctx, a)
}

func (a *app) migrator() *database.Migrator {
	return database.NewMigrator(a.cfg.MigrationURL(), a.logger)
}

// withProvisioner connects to the database for the duration of fn
func (a *app) withProvisioner(ctx context.Context, fn func(p *repository.Provisioner) error) error {
	db, err := database.NewPostgres(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(repository.NewProvisioner(db, a.logger))
}
