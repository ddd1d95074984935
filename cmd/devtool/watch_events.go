package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/discord"
	"github.com/osse101/BoxLedger_Go/internal/sse"
)

type WatchEventsCommand struct{}

func (c *WatchEventsCommand) Name() string {
	return "watch-events"
}

func (c *WatchEventsCommand) Description() string {
	return "Print the live event stream [types,comma,separated] [duration]"
}

func (c *WatchEventsCommand) Run(args []string) error {
	types := make([]string, 0, len(sse.StreamedTypes))
	for _, t := range sse.StreamedTypes {
		types = append(types, string(t))
	}
	if len(args) > 0 && args[0] != "" {
		types = strings.Split(args[0], ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(args) > 1 {
		d, err := time.ParseDuration(args[1])
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", args[1], err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	apiURL := getEnv("API_URL", "http://localhost:8080")
	PrintHeader(fmt.Sprintf("Watching %s (%s)", apiURL, strings.Join(types, ",")))

	client := discord.NewSSEClient(apiURL, os.Getenv("API_KEY"), types)
	for _, t := range types {
		client.OnEvent(t, func(evt discord.SSEEvent) error {
			fmt.Printf("%s %-22s %s\n", time.Now().Format(time.TimeOnly), evt.Type, string(evt.Payload))
			return nil
		})
	}

	client.Start(ctx)
	<-ctx.Done()
	client.Stop()
	return nil
}
