// Package cache provides the artifact cache used by the export command.
//
// Rendering large graphs through Graphviz is the slowest step of an
// export, so rendered artifacts are cached keyed by the content hash of
// the graph plus the render options. Backends: a file cache under the
// user's cache directory (the default), a Redis cache for shared
// environments, and a null cache for --no-cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey generates the cache key for a rendered artifact.
// The key format is: artifact:hash(graphHash, format, opts...).
func ArtifactKey(graphHash, format string, opts ...any) string {
	parts := append([]any{graphHash, format}, opts...)
	return hashKey("artifact", parts...)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
