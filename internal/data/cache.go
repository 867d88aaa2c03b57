package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"grid-backtest/internal/model"
)

// CacheEntry represents a cached gateway response
type CacheEntry struct {
	Response  *model.HistoricalBarsResponse
	ExpiresAt time.Time
}

// ResponseCache provides in-memory caching for historical bar responses.
// Intended for local development, where the same symbol/duration query is
// replayed against many grid configurations; it is automatically disabled
// when API_ENV=production.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *ResponseCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled
// (ENABLE_MARKETDATA_CACHE=true outside production). Returns nil otherwise.
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_MARKETDATA_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("MARKETDATA_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &ResponseCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached response if available and not expired
func (c *ResponseCache) Get(key string) (*model.HistoricalBarsResponse, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Response, true
}

// Set stores a response in the cache
func (c *ResponseCache) Set(key string, response *model.HistoricalBarsResponse) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Response:  response,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// cleanup periodically removes expired entries
func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// GenerateCacheKey creates a deterministic cache key from query parameters
func GenerateCacheKey(symbol, duration, barSize string) string {
	keyStr := fmt.Sprintf("%s:%s:%s", symbol, duration, barSize)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
