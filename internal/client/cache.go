package client

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 256

// QueryCache holds query results by key. Every mutation rule below documents
// the keys it touches. Cached slices and pointers are never modified in
// place, a rule always stores a fresh copy.
type QueryCache struct {
	mu      sync.Mutex
	entries *lru.Cache[QueryKey, any]
}

func NewQueryCache(size int) (*QueryCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[QueryKey, any](size)
	if err != nil {
		return nil, err
	}
	return &QueryCache{entries: entries}, nil
}

// Fetch returns the cached value for the query or runs it and caches the
// result. Errors are not cached.
func Fetch[T any](ctx context.Context, cache *QueryCache, query Query[T]) (T, error) {
	if value, ok := Get[T](cache, query.Key); ok {
		return value, nil
	}
	value, err := query.Fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	cache.Set(query.Key, value)
	return value, nil
}

func Get[T any](cache *QueryCache, key QueryKey) (T, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	raw, ok := cache.entries.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	value, ok := raw.(T)
	return value, ok
}

func (c *QueryCache) Set(key QueryKey, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Add(key, value)
}

// Invalidate drops every entry matching prefix. Empty fields of prefix match
// anything, so ItemsKey() drops searches and pages too.
func (c *QueryCache) Invalidate(prefixes ...QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked(prefixes...)
}

func (c *QueryCache) invalidateLocked(prefixes ...QueryKey) {
	for _, key := range c.entries.Keys() {
		for _, prefix := range prefixes {
			if key.matches(prefix) {
				c.entries.Remove(key)
				break
			}
		}
	}
}

func (c *QueryCache) Len() int {
	return c.entries.Len()
}

// InsertOptimisticItem makes a freshly created item visible before anything
// is refetched:
//   - ItemsKey(): item prepended
//   - BoxKey(boxId): item prepended, itemCount+1
//   - every cached box list: that box's itemCount+1
//   - ItemKey(id): set
//   - item searches and pages: invalidated
func (c *QueryCache) InsertOptimisticItem(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if items, ok := c.peek(ItemsKey()).([]Item); ok && indexOf(items, item.ID) < 0 {
		c.entries.Add(ItemsKey(), prependItem(items, item))
	}
	if box, ok := c.peek(BoxKey(item.BoxID)).(*BoxDetail); ok && indexOf(box.Items, item.ID) < 0 {
		updated := *box
		updated.Items = prependItem(box.Items, item)
		updated.ItemCount++
		c.entries.Add(BoxKey(item.BoxID), &updated)
	}
	c.adjustBoxListsLocked(item.BoxID, 1)
	c.entries.Add(ItemKey(item.ID), &item)
	c.dropDerivedItemListsLocked()
}

// UpsertItem merges an updated item into the same keys as
// InsertOptimisticItem, replacing by id or prepending when absent. Counts are
// left alone.
func (c *QueryCache) UpsertItem(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if items, ok := c.peek(ItemsKey()).([]Item); ok {
		c.entries.Add(ItemsKey(), upsertItem(items, item))
	}
	if box, ok := c.peek(BoxKey(item.BoxID)).(*BoxDetail); ok {
		updated := *box
		updated.Items = upsertItem(box.Items, item)
		c.entries.Add(BoxKey(item.BoxID), &updated)
	}
	c.entries.Add(ItemKey(item.ID), &item)
	c.dropDerivedItemListsLocked()
}

// RemoveItem drops a deleted item:
//   - ItemsKey() and BoxKey(boxId): item removed, box itemCount-1
//   - every cached box list: that box's itemCount-1
//   - ItemKey(id): removed
func (c *QueryCache) RemoveItem(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if items, ok := c.peek(ItemsKey()).([]Item); ok {
		c.entries.Add(ItemsKey(), removeItem(items, item.ID))
	}
	if box, ok := c.peek(BoxKey(item.BoxID)).(*BoxDetail); ok {
		updated := *box
		if indexOf(box.Items, item.ID) >= 0 {
			updated.Items = removeItem(box.Items, item.ID)
			if updated.ItemCount > 0 {
				updated.ItemCount--
			}
		}
		c.entries.Add(BoxKey(item.BoxID), &updated)
	}
	c.adjustBoxListsLocked(item.BoxID, -1)
	c.entries.Remove(ItemKey(item.ID))
	c.dropDerivedItemListsLocked()
}

// BoxChanged invalidates box lists and the box itself after a box create,
// update or delete.
func (c *QueryCache) BoxChanged(boxID string) {
	prefixes := []QueryKey{BoxesKey()}
	if boxID != "" {
		prefixes = append(prefixes, BoxKey(boxID))
	}
	c.Invalidate(prefixes...)
}

// ItemSettled invalidates everything derived from an item once background
// work on it is over, so the next read comes from the server.
func (c *QueryCache) ItemSettled(boxIDs ...string) {
	prefixes := []QueryKey{ItemsKey(), BoxesKey()}
	for _, boxID := range boxIDs {
		prefixes = append(prefixes, BoxKey(boxID))
	}
	c.Invalidate(prefixes...)
}

func (c *QueryCache) peek(key QueryKey) any {
	value, _ := c.entries.Peek(key)
	return value
}

func (c *QueryCache) adjustBoxListsLocked(boxID string, delta int) {
	for _, key := range c.entries.Keys() {
		if key.Kind != kindBoxes {
			continue
		}
		boxes, ok := c.peek(key).([]Box)
		if !ok {
			continue
		}
		for i := range boxes {
			if boxes[i].ID != boxID {
				continue
			}
			updated := make([]Box, len(boxes))
			copy(updated, boxes)
			updated[i].ItemCount += delta
			if updated[i].ItemCount < 0 {
				updated[i].ItemCount = 0
			}
			c.entries.Add(key, updated)
			break
		}
	}
}

func (c *QueryCache) dropDerivedItemListsLocked() {
	for _, key := range c.entries.Keys() {
		if key.Kind == kindItems && key != ItemsKey() {
			c.entries.Remove(key)
		}
	}
}

func indexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func prependItem(items []Item, item Item) []Item {
	updated := make([]Item, 0, len(items)+1)
	updated = append(updated, item)
	return append(updated, items...)
}

func upsertItem(items []Item, item Item) []Item {
	i := indexOf(items, item.ID)
	if i < 0 {
		return prependItem(items, item)
	}
	updated := make([]Item, len(items))
	copy(updated, items)
	updated[i] = item
	return updated
}

func removeItem(items []Item, id string) []Item {
	updated := make([]Item, 0, len(items))
	for _, existing := range items {
		if existing.ID != id {
			updated = append(updated, existing)
		}
	}
	return updated
}
