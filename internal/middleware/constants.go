package middleware

// HTTP header names
const (
	// HeaderAccountID carries the caller's account id on authenticated requests
	HeaderAccountID = "X-Account-ID"
)

// Default Values
const (
	// EmptyAccountID represents an empty or missing caller
	EmptyAccountID = ""
)

// HTTP error messages
const (
	ErrMsgMissingAccountID = "Missing X-Account-ID header"
	ErrMsgInvalidAccountID = "Invalid X-Account-ID header"
)

// Log Messages
const (
	LogMsgMissingAccountID = "Request without caller account"
	LogMsgInvalidAccountID = "Request with malformed caller account"
)
