package cache

import (
	"errors"
	"sync"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultSizeBytes = 8 * 1024 * 1024
	DefaultTTL       = 10 * time.Minute
)

// SearchCache holds encoded search results keyed by normalized query.
type SearchCache struct {
	mainCache *freecache.Cache
	ttl       time.Duration
}

// NewSearchCache creates a cache of at least sizeBytes (freecache enforces a 512KB minimum).
func NewSearchCache(sizeBytes int, ttl time.Duration) *SearchCache {
	if sizeBytes <= 0 {
		sizeBytes = DefaultSizeBytes
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SearchCache{
		mainCache: freecache.NewCache(sizeBytes),
		ttl:       ttl,
	}
}

func (sc *SearchCache) Get(key string) ([]byte, bool) {
	val, err := sc.mainCache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Warnf("search cache get [%s]: %s", key, err)
		}
		return nil, false
	}
	return val, true
}

func (sc *SearchCache) Set(key string, value []byte) bool {
	if err := sc.mainCache.Set([]byte(key), value, int(sc.ttl.Seconds())); err != nil {
		log.Warnf("search cache set [%s]: %s", key, err)
		return false
	}
	return true
}

func (sc *SearchCache) Clear() {
	sc.mainCache.Clear()
}

func (sc *SearchCache) EntryCount() int64 {
	return sc.mainCache.EntryCount()
}

// MapCache is an unbounded, non-expiring cache for tests.
type MapCache struct {
	cache map[string][]byte
	mutex sync.Mutex
}

func NewMapCache() *MapCache {
	return &MapCache{
		cache: make(map[string][]byte),
	}
}

func (mc *MapCache) Get(key string) ([]byte, bool) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	val, ok := mc.cache[key]
	return val, ok
}

func (mc *MapCache) Set(key string, value []byte) bool {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	mc.cache[key] = value
	return true
}

func (mc *MapCache) Clear() {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	mc.cache = make(map[string][]byte)
}
