package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/osse101/BoxLedger_Go/internal/event"
)

type ReplayDeadLetterCommand struct{}

func (c *ReplayDeadLetterCommand) Name() string {
	return "replay-deadletter"
}

func (c *ReplayDeadLetterCommand) Description() string {
	return "Forward dead-lettered events to Kafka [path] [--dry-run]"
}

func (c *ReplayDeadLetterCommand) Run(args []string) error {
	path := getEnv("EVENT_DEAD_LETTER_PATH", "logs/event_deadletter.jsonl")
	dryRun := false
	for _, a := range args {
		if a == "--dry-run" {
			dryRun = true
			continue
		}
		path = a
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	forward := func(_ context.Context, evt event.Event) error {
		fmt.Printf("  %s\n", evt.Type)
		return nil
	}

	if !dryRun {
		brokers := os.Getenv("KAFKA_BROKERS")
		if brokers == "" {
			return errors.New("KAFKA_BROKERS is not set; use --dry-run to only list entries")
		}
		topic := getEnv("KAFKA_TOPIC", "boxledger.events")
		sink := event.NewKafkaSink(event.NewKafkaWriter(strings.Split(brokers, ","), topic))
		defer func() {
			if err := sink.Close(); err != nil {
				PrintWarning("closing Kafka writer: %v", err)
			}
		}()
		forward = sink.Forward
		PrintHeader(fmt.Sprintf("Replaying %s to %s", path, topic))
	} else {
		PrintHeader(fmt.Sprintf("Dead letters in %s", path))
	}

	replayed, skipped, err := event.ReplayDeadLetters(ctx, path, forward)
	if skipped > 0 {
		PrintWarning("%d unreadable lines skipped", skipped)
	}
	if err != nil {
		return fmt.Errorf("after %d events: %w", replayed, err)
	}
	PrintSuccess("%d events processed", replayed)
	return nil
}
