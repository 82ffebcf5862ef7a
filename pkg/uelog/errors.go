package uelog

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrTimezoneNotFound means the stream ended (or the scan limit was
	// reached) before a timezone announcement line was seen.
	ErrTimezoneNotFound = errors.New("timezone announcement not found")

	// ErrMalformedOffset means an announcement line was found but its
	// offset numerals could not be parsed.
	ErrMalformedOffset = errors.New("malformed timezone offset")

	// ErrWatcherClosed is returned by Watch after Close has been called.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrAlreadyWatching is returned by a second call to Watch.
	ErrAlreadyWatching = errors.New("watcher is already watching")
)

// InitError reports that a stream could not be recognized as an Unreal
// Engine log during Parser construction. No records can ever be produced
// from the stream once construction has failed.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("not a recognized Unreal Engine log: %v", e.Err)
}

// Unwrap returns the underlying cause, enabling errors.Is checks against
// ErrTimezoneNotFound and ErrMalformedOffset.
func (e *InitError) Unwrap() error {
	return e.Err
}
