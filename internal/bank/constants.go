package bank

import "time"

const (
	// DefaultTimeout bounds one payout request
	DefaultTimeout = 10 * time.Second

	// PayPath is appended to the bank base URL
	PayPath = "/v1/payouts"

	// HeaderAPIKey carries the bank credential
	HeaderAPIKey = "X-API-Key"
	// HeaderIdempotencyKey carries the outbox row id so a repeated request pays once
	HeaderIdempotencyKey = "Idempotency-Key"
)

const (
	ErrMsgFailedToEncode  = "failed to encode payout request"
	ErrMsgFailedToRequest = "failed to create payout request"
	ErrMsgRequestFailed   = "payout request failed"
	ErrMsgRejected        = "payout rejected"
)

const (
	LogMsgPayoutSent   = "Native payout sent"
	LogMsgPayoutLogged = "Native payout recorded without bank"
)
