package analyzer

import (
	"sync"

	"github.com/minio/highwayhash"
)

// contentKey seeds content hashes reported as FileResult.Hash, it must stay stable across runs
var contentKey = []byte("phplint/content/highwayhash/key!")

type cacheEntry struct {
	hash    uint64
	version uint64
	result  *FileResult
}

// cache keeps last result per URL while content and exemptions are unchanged
type cache struct {
	mux     sync.Mutex
	key     []byte
	entries map[string]*cacheEntry
}

func newCache() *cache {
	return &cache{key: contentKey, entries: map[string]*cacheEntry{}}
}

// sum returns content hash of source
func (c *cache) sum(src []byte) uint64 {
	return highwayhash.Sum64(src, c.key)
}

func (c *cache) get(URL string, hash, version uint64) (*FileResult, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()
	entry, ok := c.entries[URL]
	if !ok || entry.hash != hash || entry.version != version {
		return nil, false
	}
	return entry.result, true
}

func (c *cache) put(URL string, hash, version uint64, result *FileResult) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.entries[URL] = &cacheEntry{hash: hash, version: version, result: result}
}
