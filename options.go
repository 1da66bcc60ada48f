package wikistore

import (
	"errors"
	"log/slog"
)

// storeConfig holds mutable state during Store construction.
type storeConfig struct {
	logger   *slog.Logger
	capacity int
}

// Option is a function that configures a [Store] during construction.
//
// Option implements the functional options pattern. Options return an error
// if validation fails, which [New] passes back to the caller.
//
// Built-in options: [WithLogger], [WithCapacity].
type Option func(*storeConfig) error

// WithLogger sets a custom [slog.Logger] for the store.
//
// The store logs policy changes and rejected writes at debug level.
// If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	s, err := wikistore.New(policy, wikistore.WithLogger(logger))
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *storeConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithCapacity preallocates room for n records.
//
// This is only a sizing hint; the store grows past it as needed.
//
// Returns an error if n is negative.
func WithCapacity(n int) Option {
	return func(cfg *storeConfig) error {
		if n < 0 {
			return errors.New("capacity cannot be negative")
		}
		cfg.capacity = n
		return nil
	}
}
