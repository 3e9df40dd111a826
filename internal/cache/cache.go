// Package cache stores serialized analysis reports keyed by document content.
// Re-analysis is idempotent given identical input and threshold, which is
// what makes caching by content hash safe.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is the storage interface shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for one analysis pass: the SHA-256 of the raw
// text plus the duplicate threshold. Any edit or threshold change misses.
func Key(text string, dupThreshold float64) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%.4f\n%s", dupThreshold, text)))
	return "clauselint:v1:" + hex.EncodeToString(hash[:])
}
