package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/logger"
	"github.com/osse101/BoxLedger_Go/internal/middleware"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req TransferRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Transfer"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// GetQueryParam retrieves a required query parameter from the request.
// If ok is false, the HTTP response has already been written and the handler should return.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}

// GetAccountParam retrieves a required, well-formed account id query parameter.
func GetAccountParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	account, ok := GetQueryParam(r, w, paramName)
	if !ok {
		return "", false
	}
	if !domain.IsValidAccountID(account) {
		logger.FromContext(r.Context()).Warn("Malformed account query parameter", "param", paramName, "value", account)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, paramName))
		return "", false
	}
	return account, true
}

// callerFrom returns the account set by middleware.CallerIdentity.
// A route mounted without that middleware gets 401.
func callerFrom(r *http.Request, w http.ResponseWriter) (string, bool) {
	caller := middleware.GetCaller(r.Context())
	if caller == middleware.EmptyAccountID {
		respondError(w, http.StatusUnauthorized, middleware.ErrMsgMissingAccountID)
		return "", false
	}
	return caller, true
}
