package pathfinding

import (
	"fmt"
	"sync"
	"sync/atomic"

	"evnav/grid"
)

// PathCacheKey identifies a cached search by its endpoints.
type PathCacheKey struct {
	From, To grid.Coord
}

// PathCache stores previously computed results for one grid.
type PathCache struct {
	mu        sync.RWMutex
	cache     map[PathCacheKey]Result
	maxSize   int
	hits      int64 // Use atomic operations
	misses    int64 // Use atomic operations
	evictions int64 // Use atomic operations
}

// NewPathCache creates a new path cache with the specified maximum size.
// A size of zero or less means unbounded.
func NewPathCache(maxSize int) *PathCache {
	return &PathCache{
		cache:   make(map[PathCacheKey]Result),
		maxSize: maxSize,
	}
}

// Get retrieves a result from the cache if it exists.
func (pc *PathCache) Get(start, end grid.Coord) (Result, bool) {
	pc.mu.RLock()
	r, found := pc.cache[PathCacheKey{From: start, To: end}]
	pc.mu.RUnlock()

	if found {
		atomic.AddInt64(&pc.hits, 1)
	} else {
		atomic.AddInt64(&pc.misses, 1)
	}
	return r, found
}

// Put stores a result in the cache.
func (pc *PathCache) Put(start, end grid.Coord, r Result) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.maxSize > 0 && len(pc.cache) >= pc.maxSize {
		// Evict an arbitrary entry
		for k := range pc.cache {
			delete(pc.cache, k)
			atomic.AddInt64(&pc.evictions, 1)
			break
		}
	}
	pc.cache[PathCacheKey{From: start, To: end}] = r
}

// Clear removes all entries from the cache.
func (pc *PathCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache = make(map[PathCacheKey]Result)
	atomic.StoreInt64(&pc.hits, 0)
	atomic.StoreInt64(&pc.misses, 0)
	atomic.StoreInt64(&pc.evictions, 0)
}

// Stats returns cache statistics.
func (pc *PathCache) Stats() (hits, misses, evictions, size int) {
	pc.mu.RLock()
	size = len(pc.cache)
	pc.mu.RUnlock()

	hits = int(atomic.LoadInt64(&pc.hits))
	misses = int(atomic.LoadInt64(&pc.misses))
	evictions = int(atomic.LoadInt64(&pc.evictions))
	return hits, misses, evictions, size
}

// String returns a string representation of cache statistics.
func (pc *PathCache) String() string {
	hits, misses, evictions, size := pc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf("PathCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, pc.maxSize, hits, misses, hitRate, evictions)
}

// CachedRouter wraps a Router with caching. Results are copied on the way
// out so callers may modify them freely.
type CachedRouter struct {
	router Router
	cache  *PathCache
}

// NewCachedRouter creates a caching router.
func NewCachedRouter(router Router, cacheSize int) *CachedRouter {
	return &CachedRouter{
		router: router,
		cache:  NewPathCache(cacheSize),
	}
}

// FindPath returns a cached result or runs the wrapped router.
func (cr *CachedRouter) FindPath(start, end grid.Coord) Result {
	if r, ok := cr.cache.Get(start, end); ok {
		return cloneResult(r)
	}
	r := cr.router.FindPath(start, end)
	cr.cache.Put(start, end, cloneResult(r))
	return r
}

// Cache returns the underlying cache.
func (cr *CachedRouter) Cache() *PathCache {
	return cr.cache
}

func cloneResult(r Result) Result {
	points := make([]grid.Coord, len(r.Points))
	copy(points, r.Points)
	r.Points = points
	return r
}
