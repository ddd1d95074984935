package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// encodeBuffers reuses JSON encoding buffers across responses
var encodeBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		encodeBuffers.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, only log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."

	// Purchase messages
	ErrMsgInsufficientPaymentError = "Not enough deposit to open a box"
	ErrMsgSoldOutError             = "No boxes remain"
	ErrMsgNotYetOpenError          = "The box sale has not started yet"

	// Authorization messages
	ErrMsgOwnerOnlyError = "Only the owner can call this method"

	// Token messages
	ErrMsgInsufficientBalanceError = "Not enough tokens"
	ErrMsgNotRegisteredError       = "Account is not registered"
	ErrMsgInvalidAmountError       = "Amount should be a positive number"
	ErrMsgSelfTransferError        = "Sender and receiver should be different"
	ErrMsgAmountOverflowError      = "Amount is too large"

	// Input messages
	ErrMsgInvalidAccountIDError = "Invalid account id"
	ErrMsgInvalidSelectorError  = "Invalid leaderboard selector"

	// Lifecycle messages
	ErrMsgAlreadyInitializedError = "The box sale is already initialized"
	ErrMsgNotInitializedError     = "The box sale is not initialized yet"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientPayment):
		return http.StatusBadRequest, ErrMsgInsufficientPaymentError
	case errors.Is(err, domain.ErrSoldOut):
		return http.StatusConflict, ErrMsgSoldOutError
	case errors.Is(err, domain.ErrNotYetOpen):
		return http.StatusConflict, ErrMsgNotYetOpenError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, ErrMsgOwnerOnlyError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, ErrMsgInsufficientBalanceError
	case errors.Is(err, domain.ErrAccountNotRegistered):
		return http.StatusBadRequest, ErrMsgNotRegisteredError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrSelfTransfer):
		return http.StatusBadRequest, ErrMsgSelfTransferError
	case errors.Is(err, domain.ErrAmountOverflow):
		return http.StatusBadRequest, ErrMsgAmountOverflowError
	case errors.Is(err, domain.ErrInvalidAccountID):
		return http.StatusBadRequest, ErrMsgInvalidAccountIDError
	case errors.Is(err, domain.ErrInvalidLeaderboardSelector):
		return http.StatusBadRequest, ErrMsgInvalidSelectorError
	case errors.Is(err, domain.ErrAlreadyInitialized):
		return http.StatusConflict, ErrMsgAlreadyInitializedError
	case errors.Is(err, domain.ErrNotInitialized):
		return http.StatusServiceUnavailable, ErrMsgNotInitializedError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// Default to generic message so internal details stay in the logs
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
