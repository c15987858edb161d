package lazyseq

import (
	"errors"
	"fmt"
)

// ErrDone is returned by producers and cursors to signal that a sequence has no more elements.
// Once a cursor has observed ErrDone, every later call to Next observes it as well.
var ErrDone = errors.New("no more elements")

// ErrInvalidSize is returned by the first pull of a Batch whose size is zero.
var ErrInvalidSize = errors.New("batch size must be positive")

// A JoinError is returned by a sequence created by Join when one of its sources fails.
type JoinError struct {
	// Index is the position of the failed source in the arguments given to Join.
	Index int

	// Err is the error returned by the failed source.
	Err error
}

// A DuplicateKeyError is returned by CollectMapNoDuplicateKeys to indicate that a key
// could not be added to a map because it already exists.
type DuplicateKeyError[T any, K comparable] struct {
	// Element is the upstream producer's element that caused the error.
	Element T

	// Key is the key that was already in the map.
	Key K
}

// Error implements error.
func (e *JoinError) Error() string {
	return fmt.Sprintf("join: source %d: %v", e.Index, e.Err)
}

// Unwrap returns the error of the failed source.
func (e *JoinError) Unwrap() error {
	return e.Err
}

// Error implements error.
func (e *DuplicateKeyError[T, K]) Error() string {
	return fmt.Sprintf("duplicate key: %v", e.Key)
}

// isDone returns true if err signals the end of a sequence.
func isDone(err error) bool {
	return errors.Is(err, ErrDone)
}
