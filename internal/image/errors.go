package image

import (
	"errors"
	"fmt"
)

var (
	// ErrDecodeFailed reports input that could not be decoded as an image.
	// Callers recover from it locally by degrading to an empty result.
	ErrDecodeFailed = errors.New("decode failed")

	// ErrContextUnavailable reports a missing or empty drawing surface.
	ErrContextUnavailable = errors.New("drawing context unavailable")

	// ErrEncodeFailed reports a failure to serialise an output artifact.
	ErrEncodeFailed = errors.New("encode failed")
)

// ExportError wraps the cause of a failed export together with its format.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s failed: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Is matches ErrEncodeFailed so callers can test the category with errors.Is.
func (e *ExportError) Is(target error) bool {
	return target == ErrEncodeFailed
}
