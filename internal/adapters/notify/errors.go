package notify

import "errors"

// Sentinel kinds for delivery errors.
var (
	ErrOutboxFull   = errors.New("outbox full")
	ErrOutboxClosed = errors.New("outbox closed")
)
