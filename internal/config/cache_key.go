package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

type CacheKeyStruct struct{}

// CacheKey exposes the Redis key builders used across services.
var CacheKey = CacheKeyStruct{}

// SourceContentKey returns the cache key for fetched source content
// (YouTube transcript or extracted article text). The URL is hashed so
// arbitrarily long URLs produce bounded keys.
func (r CacheKeyStruct) SourceContentKey(sourceType, url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("content:%s:%s", sourceType, hex.EncodeToString(sum[:16]))
}
