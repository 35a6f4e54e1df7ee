package storage

import (
	"context"
	"time"

	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

// Sentinels every adapter reports through. Adapters wrap them with context.
var (
	ErrNotFound = errors.ErrNotFound
	ErrConflict = errors.ErrConflict
)

// Store persists records keyed by their raw value.
//
// Create must be an atomic insert-if-absent: concurrent creates of the same
// value yield exactly one success and ErrConflict for the rest. Find returns
// records newest first.
type Store interface {
	Create(ctx context.Context, rec core.Record) error
	Get(ctx context.Context, value string) (core.Record, error)
	Find(ctx context.Context, f core.Filter) ([]core.Record, error)
	Count(ctx context.Context, f core.Filter) (int, error)
	Delete(ctx context.Context, value string) error

	Close() error
	Now() time.Time
}

// Conflict builds the error adapters return for a duplicate value.
func Conflict(value string) error {
	return errors.Wrapf(ErrConflict, "value %q", value)
}

// NotFound builds the error adapters return for a missing value.
func NotFound(value string) error {
	return errors.Wrapf(ErrNotFound, "value %q", value)
}
