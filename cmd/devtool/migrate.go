package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"

	"github.com/osse101/BoxLedger_Go/internal/database"
	"github.com/osse101/BoxLedger_Go/migrations"
)

const migrationsDir = "migrations"

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, version, create <name>)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, version, create")
	}
	subcmd := args[0]

	// create writes into the source tree and needs no database
	if subcmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}
		if err := checkHostile(args[1]); err != nil {
			return err
		}
		return goose.Create(nil, migrationsDir, args[1], "sql")
	}

	db, err := openSQL()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(database.MigrationDialect); err != nil {
		return err
	}

	ctx := context.Background()
	switch subcmd {
	case "up":
		PrintHeader("Applying migrations")
		err = goose.UpContext(ctx, db, ".")
	case "up-to", "down-to":
		if len(args) < 2 {
			return fmt.Errorf("%s needs a target version", subcmd)
		}
		version, perr := strconv.ParseInt(args[1], 10, 64)
		if perr != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], perr)
		}
		if subcmd == "up-to" {
			err = goose.UpToContext(ctx, db, ".", version)
		} else {
			err = goose.DownToContext(ctx, db, ".", version)
		}
	case "down":
		PrintWarning("Rolling back the latest migration")
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		var v int64
		v, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			PrintInfo("Database version: %d", v)
		}
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}
	if err != nil {
		return err
	}

	PrintSuccess("migrate %s complete", subcmd)
	return nil
}
