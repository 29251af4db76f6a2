package filecache

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned when a cache key has neither a content key nor a
// content hash.
var ErrInvalidKey = errors.New("cache key has neither content key nor content hash")

// FetchError wraps a failure reported by the Loadable itself, during either
// key derivation or the remote load. The wrapped error is the Loadable's own
// and is surfaced verbatim through Unwrap.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cache fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// EncodeError wraps a failure encoding a fetched value to the cache format.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cache encode failed: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// StoreError wraps a filesystem failure during directory creation or artifact
// write. A missing file on read is not a StoreError; it is a cache miss.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("cache store failed: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
