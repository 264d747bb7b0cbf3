package main

import (
	"context"
	"fmt"
)

type MigrateCommand struct {
	Up      MigrateUpCommand      `command:"up" description:"Create the OAuth tables and indexes"`
	Down    MigrateDownCommand    `command:"down" description:"Drop the OAuth indexes and tables"`
	Version MigrateVersionCommand `command:"version" description:"Show the applied schema version"`
	Force   MigrateForceCommand   `command:"force" description:"Set the schema version without running migrations"`
}

type MigrateUpCommand struct{}

func (c *MigrateUpCommand) Execute(args []string) error {
	return run(func(ctx context.Context, a *app) error {
		return a.migrator().Prepare(ctx)
	})
}

type MigrateDownCommand struct{}

func (c *MigrateDownCommand) Execute(args []string) error {
	return run(func(ctx context.Context, a *app) error {
		return a.migrator().Revert(ctx)
	})
}

type MigrateVersionCommand struct{}

func (c *MigrateVersionCommand) Execute(args []string) error {
	return run(func(ctx context.Context, a *app) error {
		version, dirty, err := a.migrator().Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return nil
	})
}

type MigrateForceCommand struct {
	Args struct {
		Version int `positional-arg-name:"version" required:"true"`
	} `positional-args:"yes"`
}

func (c *MigrateForceCommand) Execute(args []string) error {
	return run(func(ctx context.Context, a *app) error {
		return a.migrator().Force(c.Args.Version)
	})
}
