package middleware

import (
	"context"
	"net/http"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// CallerKey is the context key for the calling account
	CallerKey contextKey = "caller_account"
)

// CallerIdentity requires a well-formed X-Account-ID header and stores it in the
// request context. It rejects missing ids with 401 and malformed ids with 400.
func CallerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		caller := r.Header.Get(HeaderAccountID)
		if caller == EmptyAccountID {
			log.Warn(LogMsgMissingAccountID, "path", r.URL.Path)
			http.Error(w, ErrMsgMissingAccountID, http.StatusUnauthorized)
			return
		}
		if err := domain.ValidateAccountID(caller); err != nil {
			log.Warn(LogMsgInvalidAccountID, "path", r.URL.Path, "error", err)
			http.Error(w, ErrMsgInvalidAccountID, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

// WithCaller adds the caller account to the context
func WithCaller(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, CallerKey, account)
}

// GetCaller retrieves the caller account from context
func GetCaller(ctx context.Context) string {
	if caller := ctx.Value(CallerKey); caller != nil {
		if account, ok := caller.(string); ok {
			return account
		}
	}
	return EmptyAccountID
}
