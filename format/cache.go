package format

import (
	"container/list"
	"sync"

	"github.com/arloliu/structpack/internal/hash"
)

// DefaultCacheCapacity is the number of compiled formats the process-wide
// cache retains before evicting the least recently used entry.
const DefaultCacheCapacity = 128

type cacheEntry struct {
	key      uint64
	format   string
	compiled *CompiledFormat
}

// compileCache is an LRU of compiled formats keyed by the xxHash64 of the
// literal format string. Lookups take the read lock; promotions, inserts
// and evictions take the write lock. The literal string is stored alongside
// each entry and compared on hit, so a hash collision degrades to a miss
// instead of returning the wrong format.
type compileCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[uint64]*list.Element
	order    *list.List // front = most recently used
}

func newCompileCache(capacity int) *compileCache {
	return &compileCache{
		capacity: capacity,
		entries:  make(map[uint64]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *compileCache) lookup(key uint64, format string) (*CompiledFormat, bool) {
	c.mu.RLock()
	el, ok := c.entries[key]
	var compiled *CompiledFormat
	if ok {
		ent, _ := el.Value.(*cacheEntry)
		if ent.format == format {
			compiled = ent.compiled
		} else {
			ok = false // hash collision with a different format string
		}
	}
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	c.mu.Lock()
	c.order.MoveToFront(el)
	c.mu.Unlock()

	return compiled, true
}

func (c *compileCache) store(key uint64, format string, compiled *CompiledFormat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value = &cacheEntry{key: key, format: format, compiled: compiled}
		c.order.MoveToFront(el)

		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, format: format, compiled: compiled})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		ent, _ := oldest.Value.(*cacheEntry)
		delete(c.entries, ent.key)
	}
}

func (c *compileCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.order.Len()
}

var defaultCache = newCompileCache(DefaultCacheCapacity)

// CompileCached compiles a format string through a process-wide LRU cache.
//
// Compilation is deterministic and side-effect-free, so caching is purely a
// performance optimization: CompileCached always returns the same result as
// Compile for the same input. Compile errors are never cached.
//
// The returned CompiledFormat may be shared with other callers and must be
// treated as read-only.
func CompileCached(format string) (*CompiledFormat, error) {
	key := hash.ID(format)
	if cf, ok := defaultCache.lookup(key, format); ok {
		return cf, nil
	}

	cf, err := Compile(format)
	if err != nil {
		return nil, err
	}
	defaultCache.store(key, format, cf)

	return cf, nil
}
