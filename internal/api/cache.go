package api

import (
	"crypto/sha256"
	"sync"

	"github.com/modai-labs/paritycheck/internal/detector"
)

// resultCache memoizes inference results by text hash. Inference is
// deterministic for fixed weights, so entries never go stale within a
// process lifetime. When full the cache is cleared wholesale.
type resultCache struct {
	mu      sync.RWMutex
	entries map[[32]byte]detector.InferenceResult
	maxSize int
}

func newResultCache(maxSize int) *resultCache {
	if maxSize <= 0 {
		maxSize = 1024
	}
	return &resultCache{
		entries: make(map[[32]byte]detector.InferenceResult, maxSize),
		maxSize: maxSize,
	}
}

func (c *resultCache) get(text string) (detector.InferenceResult, bool) {
	key := sha256.Sum256([]byte(text))
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[key]
	return res, ok
}

func (c *resultCache) put(text string, res detector.InferenceResult) {
	key := sha256.Sum256([]byte(text))
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxSize {
		clear(c.entries)
	}
	c.entries[key] = res
}
