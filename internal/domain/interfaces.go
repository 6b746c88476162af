package domain

//go:generate mockgen -source=interfaces.go -destination=../mocks/archive_mock.go -package=mocks

import (
	"context"
	"time"
)

// Archive is an opened container of named data fields
type Archive interface {
	// Has reports whether a field with the given name exists
	Has(name string) bool
	// Scalar reads a single-element field as a float64
	Scalar(name string) (float64, error)
	// Shape returns the dimensions of an array field
	Shape(name string) ([]int, error)
	// Close releases the underlying file
	Close() error
}

// Scanner enumerates candidate files under a root directory
type Scanner interface {
	Scan(root string) ([]Candidate, error)
}

// ArchiveOpener opens archives by path
type ArchiveOpener interface {
	Open(path string) (Archive, error)
}

// MetadataExtractor derives motion metadata from a candidate file
type MetadataExtractor interface {
	Extract(ctx context.Context, c Candidate) (*Metadata, error)
}

// Cache defines the interface for metadata caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}
