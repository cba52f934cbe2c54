package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

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

// ArtifactKey returns the key of a rendered artifact. The format is kept in
// clear so keys can be grouped by type; the state key and render options are
// hashed.
func ArtifactKey(stateKey, format string, opts ...any) string {
	return hashKey("artifact:"+format, append([]any{stateKey}, opts...)...)
}

// KeyType returns the artifact format encoded in key, for hook reporting.
func KeyType(key string) string {
	const prefix = "artifact:"
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		return "unknown"
	}
	rest := key[len(prefix):]
	for i := range len(rest) {
		if rest[i] == ':' {
			return rest[:i]
		}
	}
	return "unknown"
}
