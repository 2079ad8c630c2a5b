// Package cache provides a bounded in-memory cache for synthesized dispatch
// results, keyed by immutable query parameters. Entries hold serialized
// copies of prior results, never shared mutable references, so a cache hit
// can be handed out without cloning domain structures. The cache is an
// explicit dependency passed into the service, not an ambient singleton.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/okian/ringside/internal/domain/types"
	"github.com/okian/ringside/pkg/metrics"
)

// Cache stores dispatch results under immutable string keys.
type Cache interface {
	// Get returns a copy of the cached result for key, if present.
	Get(ctx context.Context, key string) (types.DispatchResult, bool)

	// Put stores a copy of the result under key, evicting the least
	// recently used entry when the cache is full.
	Put(ctx context.Context, key string, res types.DispatchResult)

	// Invalidate drops every entry. Call it after an out-of-band data
	// refresh so stale metric results are not served.
	Invalidate(ctx context.Context)

	// Remove drops a single entry.
	Remove(ctx context.Context, key string)

	Size() int64
}

// node is a doubly linked LRU list entry.
type node struct {
	key  string
	res  types.DispatchResult
	prev *node
	next *node
}

func (n *node) reset() {
	n.key = ""
	n.res = types.DispatchResult{}
	n.prev = nil
	n.next = nil
}

// lruCache implements Cache with a mutex-guarded map plus an intrusive
// doubly linked list ordered by recency. head is most recently used.
type lruCache struct {
	mu       sync.Mutex
	entries  map[string]*node
	head     *node
	tail     *node
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// New creates a bounded LRU cache with configuration options.
func New(opts ...Option) Cache {
	c := &lruCache{
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.entries = make(map[string]*node)
	c.nodePool = sync.Pool{
		New: func() interface{} {
			return &node{}
		},
	}

	return c
}

// Get returns a copy of the cached result and promotes the entry.
func (c *lruCache) Get(_ context.Context, key string) (types.DispatchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		return types.DispatchResult{}, false
	}
	c.moveToFront(n)
	return copyResult(n.res), true
}

// Put stores a detached copy of res under key.
func (c *lruCache) Put(_ context.Context, key string, res types.DispatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.res = copyResult(res)
		c.moveToFront(n)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictTail()
	}

	n := c.nodePool.Get().(*node)
	n.key = key
	n.res = copyResult(res)
	c.pushFront(n)
	c.entries[key] = n
	c.size.Add(1)
}

// Invalidate drops every entry.
func (c *lruCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, n := range c.entries {
		delete(c.entries, key)
		n.reset()
		c.nodePool.Put(n)
	}
	c.head = nil
	c.tail = nil
	c.size.Store(0)
}

// Remove drops a single entry.
func (c *lruCache) Remove(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	c.unlink(n)
	n.reset()
	c.nodePool.Put(n)
	c.size.Add(-1)
}

// Size returns the current number of entries.
func (c *lruCache) Size() int64 {
	return c.size.Load()
}

// evictTail removes the least recently used entry. Must be called with
// c.mu held.
func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	victim := c.tail
	delete(c.entries, victim.key)
	c.unlink(victim)
	victim.reset()
	c.nodePool.Put(victim)
	c.size.Add(-1)
	metrics.RecordCacheEviction()
}

func (c *lruCache) pushFront(n *node) {
	n.next = c.head
	n.prev = nil
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *lruCache) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}

func (c *lruCache) moveToFront(n *node) {
	if c.head == n {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

// copyResult detaches the payload by round-tripping it through JSON. Metric
// results are plain data and marshal losslessly; the raw bytes stored on
// one side never alias the bytes handed out on the other.
func copyResult(res types.DispatchResult) types.DispatchResult {
	out := res
	if res.Data == nil {
		return out
	}
	if raw, ok := res.Data.(json.RawMessage); ok {
		dup := make(json.RawMessage, len(raw))
		copy(dup, raw)
		out.Data = dup
		return out
	}
	raw, err := json.Marshal(res.Data)
	if err != nil {
		// Unmarshalable payloads are dropped rather than shared.
		out.Data = nil
		return out
	}
	out.Data = json.RawMessage(raw)
	return out
}
