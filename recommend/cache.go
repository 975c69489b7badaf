// ReccoVerse - Multi-Domain Recommendation Scoring Core
// Copyright 2026 ReccoVerse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reccoverse/engine

package recommend

import (
	"sync"
	"time"
)

// vectorCache holds computed item vectors keyed by catalog fingerprint.
// Entries expire after a TTL; when the cache is full the oldest entry is
// evicted. A changed catalog produces a different fingerprint, so stale
// vectors are never served for a catalog that no longer matches them.
type vectorCache struct {
	mu         sync.Mutex
	entries    map[uint64]*vectorCacheEntry
	ttl        time.Duration
	maxEntries int
}

type vectorCacheEntry struct {
	vectors  *ItemVectors
	storedAt time.Time
}

func newVectorCache(ttl time.Duration, maxEntries int) *vectorCache {
	return &vectorCache{
		entries:    make(map[uint64]*vectorCacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get returns the cached vectors for the fingerprint, or nil if absent or
// expired. Expired entries are removed on access.
func (c *vectorCache) Get(fingerprint uint64) *ItemVectors {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[fingerprint]
	if !ok {
		return nil
	}
	if time.Since(entry.storedAt) > c.ttl {
		delete(c.entries, fingerprint)
		return nil
	}
	return entry.vectors
}

// Put stores vectors under the fingerprint, evicting the oldest entry if
// the cache is full.
func (c *vectorCache) Put(fingerprint uint64, vectors *ItemVectors) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		if _, ok := c.entries[fingerprint]; !ok {
			c.evictOldestLocked()
		}
	}
	c.entries[fingerprint] = &vectorCacheEntry{
		vectors:  vectors,
		storedAt: time.Now(),
	}
}

func (c *vectorCache) evictOldestLocked() {
	var oldestKey uint64
	var oldestAt time.Time
	first := true
	for key, entry := range c.entries {
		if first || entry.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.storedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

// Len returns the number of cached entries, including expired ones that
// have not been touched since expiry.
func (c *vectorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
