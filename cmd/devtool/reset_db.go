package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ResetDBCommand struct{}

func (c *ResetDBCommand) Name() string {
	return "reset-db"
}

func (c *ResetDBCommand) Description() string {
	return "Drop and recreate the development database (--yes skips the prompt)"
}

func (c *ResetDBCommand) Run(args []string) error {
	if env := getEnv("ENVIRONMENT", envDev); env != envDev {
		return fmt.Errorf("refusing to reset a %s database", env)
	}

	settings := loadDBSettings()
	if err := checkHostile(settings.name); err != nil {
		return err
	}

	if len(args) == 0 || args[0] != "--yes" {
		fmt.Printf("This drops database %q and every ledger in it. Type %q to continue: ", settings.name, confirmYes)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(answer) != confirmYes {
			PrintInfo("Aborted")
			return nil
		}
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, settings.url("postgres"))
	if err != nil {
		return fmt.Errorf("connect to server: %w", err)
	}
	defer conn.Close(ctx)

	ident := pgx.Identifier{settings.name}.Sanitize()

	PrintInfo("Terminating connections to %s", settings.name)
	if _, err := conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, settings.name); err != nil {
		PrintWarning("Failed to terminate connections: %v", err)
	}

	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("create database: %w", err)
	}

	PrintSuccess("Database %s recreated", settings.name)
	PrintInfo("Next step: devtool migrate up (the service also migrates on start)")
	return nil
}
