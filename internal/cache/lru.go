// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type lruEntry struct {
	key       string
	value     string
	expiresAt time.Time
	prev      *lruEntry
	next      *lruEntry
}

// LRU is an in-process, size-bounded cache with a fixed TTL.
type LRU struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration

	items map[string]*lruEntry

	// head.next is the most recently used entry, tail.prev the least.
	head *lruEntry
	tail *lruEntry

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	now func() time.Time
}

// NewLRU creates an LRU holding at most capacity entries for ttl each.
// Non-positive values select 10000 entries and 10 minutes.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	c := &LRU{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*lruEntry, capacity),
		head:     &lruEntry{},
		tail:     &lruEntry{},
		now:      time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get implements Store. It never returns an error.
func (c *LRU) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		return "", false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.unlink(entry)
		c.misses.Add(1)
		return "", false, nil
	}

	c.unlinkList(entry)
	c.pushFront(entry)
	c.hits.Add(1)
	return entry.value, true, nil
}

// Set implements Store. It never returns an error.
func (c *LRU) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.unlinkList(entry)
		c.pushFront(entry)
		return nil
	}

	entry := &lruEntry{key: key, value: value, expiresAt: expiresAt}
	c.pushFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		if oldest == c.head {
			break
		}
		c.unlink(oldest)
		c.evictions.Add(1)
	}
	return nil
}

// Close implements Store.
func (c *LRU) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*lruEntry)
	c.head.next = c.tail
	c.tail.prev = c.head
	return nil
}

// Len returns the number of entries, expired ones included.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns hit, miss and eviction counters.
func (c *LRU) Stats() (hits, misses, evictions int64) {
	return c.hits.Load(), c.misses.Load(), c.evictions.Load()
}

func (c *LRU) pushFront(entry *lruEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU) unlinkList(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
}

func (c *LRU) unlink(entry *lruEntry) {
	c.unlinkList(entry)
	delete(c.items, entry.key)
}

var _ Store = (*LRU)(nil)
