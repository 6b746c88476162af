package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrMissingFrameRate indicates an archive has none of the frame-rate fields
	ErrMissingFrameRate = errors.New("no frame rate field found")

	// ErrMissingPoses indicates an archive has no poses field
	ErrMissingPoses = errors.New("no poses field found")

	// ErrInvalidFrameRate indicates a frame rate that is zero, negative or not finite
	ErrInvalidFrameRate = errors.New("invalid frame rate")

	// ErrWriteFailed indicates writing output failed
	ErrWriteFailed = errors.New("write failed")
)

// ArchiveReadError represents a failure while opening or reading an archive
type ArchiveReadError struct {
	Path string
	Err  error
}

func (e *ArchiveReadError) Error() string {
	return fmt.Sprintf("archive read error for %s: %v", e.Path, e.Err)
}

func (e *ArchiveReadError) Unwrap() error {
	return e.Err
}

// NewArchiveReadError creates a new ArchiveReadError
func NewArchiveReadError(path string, err error) *ArchiveReadError {
	return &ArchiveReadError{
		Path: path,
		Err:  err,
	}
}

// IsSkippable reports whether err is a per-file extraction failure.
// The builder drops the candidate for skippable errors and aborts the
// build on anything else.
func IsSkippable(err error) bool {
	var readErr *ArchiveReadError
	if errors.As(err, &readErr) {
		return true
	}
	return errors.Is(err, ErrMissingFrameRate) ||
		errors.Is(err, ErrMissingPoses) ||
		errors.Is(err, ErrInvalidFrameRate)
}

// SkipReason returns a short machine-friendly label for a skippable error
func SkipReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingFrameRate):
		return "missing_frame_rate"
	case errors.Is(err, ErrMissingPoses):
		return "missing_poses"
	case errors.Is(err, ErrInvalidFrameRate):
		return "invalid_frame_rate"
	default:
		return "archive_read_error"
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
