package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds shared by the service and its adapters.
var (
	// ErrInvalidRecord marks a medicine that cannot be scheduled.
	ErrInvalidRecord = errors.New("invalid record")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("medicine not found")
	ErrNotStarted    = errors.New("service not started")
)

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, reason)
}
