package core

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound signals an absence: a user with no credits, or no
	// plans in a requested window.
	ErrNotFound = errors.New("not found")

	// ErrUnknownCategory signals a category name with no defined
	// aggregation or dictionary entry.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrMalformedInput signals an uploaded file that is not a
	// supported tabular format or lacks required columns.
	ErrMalformedInput = errors.New("malformed input")

	// ErrStoreUnavailable signals that the relational store is
	// unreachable. Never retried; fatal for the current operation.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError carries every rule violation found in an ingestion
// batch. Nothing is persisted when it is returned.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "plan validation failed: " + strings.Join(e.Messages, ". ")
}
