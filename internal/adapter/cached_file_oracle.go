package adapter

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	m "depmap.dev/pkg/depmap/internal/model"
)

// CachedFileOracle decorates a FileOracle with an LRU cache of existence
// answers keyed by the queried path. Failed lookups are not cached.
type CachedFileOracle struct {
	FileOracle
	cache *lru.Cache[m.Path, bool]
}

// NewCachedFileOracle wraps oracle with a cache holding up to size entries.
func NewCachedFileOracle(oracle FileOracle, size int) (*CachedFileOracle, error) {
	cache, err := lru.New[m.Path, bool](size)
	if err != nil {
		return nil, fmt.Errorf("create existence cache: %w", err)
	}

	return &CachedFileOracle{FileOracle: oracle, cache: cache}, nil
}

// Exists returns the cached answer for path or queries the wrapped oracle.
func (c *CachedFileOracle) Exists(path m.Path) (bool, error) {
	if exists, ok := c.cache.Get(path); ok {
		return exists, nil
	}

	exists, err := c.FileOracle.Exists(path)
	if err != nil {
		return false, err
	}

	c.cache.Add(path, exists)

	return exists, nil
}

// Len returns the number of cached answers.
func (c *CachedFileOracle) Len() int {
	return c.cache.Len()
}
