package store

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that an id has no backing document. Recoverable:
// callers typically respond by creating one.
var ErrNotFound = errors.New("board not found")

// DecodeError reports that a document file exists but its bytes match no
// known schema shape. The document is unavailable; it is never silently
// replaced without the caller opting in.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
