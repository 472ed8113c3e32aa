package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by the storage layer when a document is not
	// present. The gateway translates it into a nil result: lookups never
	// surface not-found as an error to callers.
	ErrNotFound = errors.New("quote not found")

	// ErrDuplicateQuoteID is returned on insert when the candidate quote id
	// is already taken in the target collection. It is the only failure the
	// creation loop recovers from.
	ErrDuplicateQuoteID = errors.New("quote id already taken")

	// ErrNoTargets is returned in strict routing mode when a service filter
	// resolves to an empty target set instead of falling back.
	ErrNoTargets = errors.New("service filter resolves to no targets")
)

// IdentifierAllocationError reports that every attempt to claim a quote id
// lost the race. It is fatal to the request; callers may retry the whole
// operation later.
type IdentifierAllocationError struct {
	Service  string
	Attempts int
}

func (e *IdentifierAllocationError) Error() string {
	return fmt.Sprintf("could not allocate quote id for service %q after %d attempts", e.Service, e.Attempts)
}

// StorageError wraps an underlying persistence failure unrelated to
// identifier collision. It is propagated to callers unchanged.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s on %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// WrapStorage wraps err in a StorageError. Nil errors and the sentinels the
// core handles itself (ErrNotFound, ErrDuplicateQuoteID) pass through
// untouched so errors.Is checks in the calling layers stay direct.
func WrapStorage(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateQuoteID) {
		return err
	}
	return &StorageError{Op: op, Collection: collection, Err: err}
}
