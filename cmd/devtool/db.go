package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// dbSettings reads the same DB_* variables as the service
type dbSettings struct {
	user, password, host, port, name string
}

func loadDBSettings() dbSettings {
	return dbSettings{
		user:     getEnv("DB_USER", "dev"),
		password: getEnv("DB_PASSWORD", "change_this_secure_password"),
		host:     getEnv("DB_HOST", "localhost"),
		port:     getEnv("DB_PORT", "5432"),
		name:     getEnv("DB_NAME", appName),
	}
}

// url returns a connection string for database; empty means the configured one
func (s dbSettings) url(database string) string {
	if database == "" {
		database = s.name
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", s.user, s.password, s.host, s.port, database)
}

// serviceDBURL honours DB_URL before falling back to DB_* parts
func serviceDBURL() string {
	return getEnv("DB_URL", loadDBSettings().url(""))
}

func openSQL() (*sql.DB, error) {
	return sql.Open("pgx", serviceDBURL())
}

func pingOnce(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())
	return conn.Ping(ctx)
}
