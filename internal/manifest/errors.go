package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrInvalidFormat indicates the manifest file is not valid YAML or JSON
	ErrInvalidFormat = errors.New("manifest must be valid YAML or JSON")

	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")

	// ErrEmptyFile indicates an entry without a file identifier
	ErrEmptyFile = errors.New("motion file cannot be empty")

	// ErrInvalidFPS indicates an entry whose fps is not a positive finite number
	ErrInvalidFPS = errors.New("motion fps must be positive and finite")

	// ErrIndexGap indicates idx values that are not 0..N-1 in order
	ErrIndexGap = errors.New("motion idx must be contiguous from 0")

	// ErrInvalidTiming indicates a sub-motion range outside 0 <= start <= end
	ErrInvalidTiming = errors.New("sub-motion timings must satisfy 0 <= start <= end")

	// ErrIdentifierCollision indicates two archives normalized to the same identifier
	ErrIdentifierCollision = errors.New("identifier collision")
)
