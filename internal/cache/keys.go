package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strconv"
	"time"
)

// KeyPrefix constants for different cache types
const (
	PrefixMetadata = "meta"
)

// GenerateKey returns the hex SHA256 of the given parts joined by NUL bytes
func GenerateKey(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateKeyWithPrefix generates a cache key with a prefix
func GenerateKeyWithPrefix(prefix string, parts ...string) string {
	return prefix + ":" + GenerateKey(parts...)
}

// MetadataKey generates the cache key for a file's extracted metadata.
// Size and modification time are part of the key so a rewritten file misses.
func MetadataKey(path string, size int64, modTime time.Time) string {
	return GenerateKeyWithPrefix(PrefixMetadata,
		filepath.Clean(path),
		strconv.FormatInt(size, 10),
		strconv.FormatInt(modTime.UnixNano(), 10),
	)
}
