package event

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/logger"
)

// DeadLetterSchemaVersion is bumped whenever DeadLetterEntry changes shape
const DeadLetterSchemaVersion = "1.0"

// DeadLetterWriter appends events that could not be published to a JSON-lines file
type DeadLetterWriter struct {
	file *os.File
	mu   sync.Mutex
}

// DeadLetterEntry is one line of the dead-letter file
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewDeadLetterWriter opens path for appending, creating it if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write appends evt with its attempt count and last failure
func (dlw *DeadLetterWriter) Write(evt Event, attempts int, lastError error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		Event:         evt,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode dead letter for %s: %w", evt.Type, err)
	}

	dlw.mu.Lock()
	defer dlw.mu.Unlock()

	logger.Warn(LogMsgEventDeadLettered, "event_type", evt.Type, "attempts", attempts, "error", entry.LastError)
	_, err = dlw.file.Write(append(data, '\n'))
	return err
}

// Close closes the dead-letter file
func (dlw *DeadLetterWriter) Close() error {
	return dlw.file.Close()
}

// ReplayDeadLetters reads every entry in path and hands its event to fn.
// Lines that cannot be decoded are skipped and counted. Replay stops at the
// first fn error, returning how many events were replayed before it.
func ReplayDeadLetters(ctx context.Context, path string, fn func(context.Context, Event) error) (replayed, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, DeadLetterLineBuffer), DeadLetterMaxLine)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return replayed, skipped, err
		}
		if len(sc.Bytes()) == 0 {
			continue
		}

		var entry DeadLetterEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil || entry.Event.Type == "" {
			skipped++
			continue
		}
		if err := fn(ctx, entry.Event); err != nil {
			return replayed, skipped, fmt.Errorf("replay %s: %w", entry.Event.Type, err)
		}
		replayed++
	}
	return replayed, skipped, sc.Err()
}
