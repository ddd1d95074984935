package main

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	defaultDBWaitRetries  = 30
	defaultDBWaitInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for the database to accept connections [retries]"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	maxRetries := defaultDBWaitRetries
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid retry count %q", args[0])
		}
		maxRetries = n
	}

	return waitForDB(context.Background(), serviceDBURL(), maxRetries, defaultDBWaitInterval)
}

func waitForDB(ctx context.Context, url string, maxRetries int, interval time.Duration) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = pingOnce(ctx, url); err == nil {
			PrintSuccess("Database is ready")
			return nil
		}

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(interval)
		}
	}
	return fmt.Errorf("database failed to become ready after %d attempts: %w", maxRetries, err)
}
