package npz

import "errors"

// Sentinel errors for the npz package
var (
	// ErrFieldNotFound indicates the archive has no member with the given name
	ErrFieldNotFound = errors.New("field not found")

	// ErrNotNPY indicates a member does not start with the NPY magic string
	ErrNotNPY = errors.New("not an NPY file")

	// ErrInvalidHeader indicates a malformed NPY header
	ErrInvalidHeader = errors.New("invalid NPY header")

	// ErrUnsupportedDType indicates a dtype this reader cannot decode
	ErrUnsupportedDType = errors.New("unsupported dtype")

	// ErrNotScalar indicates a field with more than one element was read as a scalar
	ErrNotScalar = errors.New("field is not a single value")
)
