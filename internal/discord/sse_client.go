package discord

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/sse"
)

var errStreamClosed = errors.New("stream closed by server")

// SSEEvent is one decoded frame of the box service event stream
type SSEEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// SSEEventHandler handles a specific event type
type SSEEventHandler func(event SSEEvent) error

// SSEClient follows the box service event stream and reconnects with backoff
type SSEClient struct {
	baseURL    string
	apiKey     string
	eventTypes []string
	httpClient *http.Client

	mu        sync.RWMutex
	handlers  map[string][]SSEEventHandler
	connected bool

	stopOnce sync.Once
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewSSEClient creates a new SSE client
func NewSSEClient(baseURL, apiKey string, eventTypes []string) *SSEClient {
	return &SSEClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		eventTypes: eventTypes,
		handlers:   make(map[string][]SSEEventHandler),
		// streams stay open indefinitely, so no client timeout
		httpClient: &http.Client{},
		shutdown:   make(chan struct{}),
	}
}

// OnEvent registers a handler for a specific event type
func (c *SSEClient) OnEvent(eventType string, handler SSEEventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

// Start begins the SSE connection with auto-reconnect
func (c *SSEClient) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop shuts the client down and waits for the loop to exit. Safe to call twice.
func (c *SSEClient) Stop() {
	c.stopOnce.Do(func() { close(c.shutdown) })
	c.wg.Wait()
}

// IsConnected reports whether a stream is currently open
func (c *SSEClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *SSEClient) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

func (c *SSEClient) connectLoop(ctx context.Context) {
	defer c.wg.Done()
	defer slog.Info(sseLogMsgClientStopped)

	// a cancelled request unblocks the body read when Stop is called
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	backoff := sseInitialBackoff
	failures := 0

	for ctx.Err() == nil {
		connected, err := c.connect(ctx)
		c.setConnected(false)
		if ctx.Err() != nil {
			return
		}
		if connected {
			backoff = sseInitialBackoff
			failures = 0
		}
		failures++
		slog.Warn(sseLogMsgConnectionFailed,
			"error", err,
			"backoff", backoff,
			"consecutive_failures", failures)

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
		backoff = nextBackoff(backoff)
	}
}

func nextBackoff(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * sseBackoffMultiplier)
	if next > sseMaxBackoff {
		return sseMaxBackoff
	}
	return next
}

// streamURL builds the events endpoint with the type filter
func (c *SSEClient) streamURL() string {
	u := c.baseURL + "/api/v1/events"
	if len(c.eventTypes) > 0 {
		u += "?" + url.Values{"types": {strings.Join(c.eventTypes, ",")}}.Encode()
	}
	return u
}

// connect reports whether the stream was established before it failed
func (c *SSEClient) connect(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.streamURL(), nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	c.setConnected(true)
	slog.Info(sseLogMsgClientConnected, "url", req.URL.String())

	return true, c.readEvents(resp.Body)
}

// readEvents parses "id:", "event:" and "data:" lines; a blank line ends a frame
func (c *SSEClient) readEvents(body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, sseBufferSize), sseBufferSize)

	var id, eventType string
	var data strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if data.Len() > 0 {
				c.dispatchEvent(id, eventType, data.String())
			}
			id, eventType = "", ""
			data.Reset()
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "id":
			id = value
		case "event":
			eventType = value
		case "data":
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stream: %w", err)
	}
	return errStreamClosed
}

func (c *SSEClient) dispatchEvent(id, eventType, data string) {
	if eventType == sse.EventTypeKeepalive || eventType == sse.EventTypeConnected {
		return
	}

	var evt SSEEvent
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "data", data)
		return
	}
	if eventType != "" {
		evt.Type = eventType
	}
	if id != "" {
		evt.ID = id
	}

	c.mu.RLock()
	handlers := c.handlers[evt.Type]
	c.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(evt); err != nil {
			slog.Error(sseLogMsgHandlerError, "event_type", evt.Type, "error", err)
		}
	}
}
