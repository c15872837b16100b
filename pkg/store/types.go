package store

import "time"

// Config holds configuration for a fixed-record store.
type Config struct {
	FilePath string // Path to the store file
	Name     string // Store name used in logs and metrics
}

// Observer receives a notification for every completed store operation.
// pkg/metrics provides the prometheus implementation.
type Observer interface {
	ObserveOp(store, operation string, err error, duration time.Duration)
	SetRecords(store string, n int)
}

// Errors
var (
	ErrNotFound         = &StoreError{"record not found"}
	ErrStoreUnavailable = &StoreError{"store unavailable"}
	ErrShortWrite       = &StoreError{"short write"}
	ErrBadIndex         = &StoreError{"index out of range"}
)

// StoreError represents a record store error.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
