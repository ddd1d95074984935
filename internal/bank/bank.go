// Package bank moves native currency out of the contract account.
package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/logger"
)

// ErrRejected is returned when the bank answers with a non-2xx status
var ErrRejected = errors.New(ErrMsgRejected)

// NativeBank pays native currency to an account
type NativeBank interface {
	Pay(ctx context.Context, to string, amount domain.Amount, reference string) error
}

// HTTPBank posts payouts to an external payment service
type HTTPBank struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPBank creates a bank client for baseURL
func NewHTTPBank(baseURL, apiKey string) *HTTPBank {
	return &HTTPBank{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

type payRequest struct {
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

// Pay sends one payout. reference doubles as the idempotency key.
func (b *HTTPBank) Pay(ctx context.Context, to string, amount domain.Amount, reference string) error {
	body, err := json.Marshal(payRequest{To: to, Amount: amount.String(), Reference: reference})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncode, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+PayPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderIdempotencyKey, reference)
	if b.apiKey != "" {
		req.Header.Set(HeaderAPIKey, b.apiKey)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	logger.FromContext(ctx).Info(LogMsgPayoutSent, "to", to, "amount", amount.String(), "reference", reference)
	return nil
}

// LogBank records payouts in the log only. Used when no bank is configured.
type LogBank struct{}

// Pay logs the payout
func (LogBank) Pay(ctx context.Context, to string, amount domain.Amount, reference string) error {
	logger.FromContext(ctx).Info(LogMsgPayoutLogged,
		"to", to,
		"amount", domain.FormatTokens(amount),
		"reference", reference)
	return nil
}

// New picks the HTTP bank when baseURL is set and the log bank otherwise
func New(baseURL, apiKey string) NativeBank {
	if baseURL == "" {
		return LogBank{}
	}
	return NewHTTPBank(baseURL, apiKey)
}
