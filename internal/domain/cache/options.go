package cache

// defaultMaxSize bounds the cache when no option is given.
const defaultMaxSize = 1024

// Option applies a configuration option to the cache.
type Option func(*lruCache)

// WithMaxSize sets the maximum number of cached results. Values below one
// are ignored and the default bound keeps the cache from growing without
// limit.
func WithMaxSize(maxSize int) Option {
	return func(c *lruCache) {
		if maxSize > 0 {
			c.maxSize = maxSize
		}
	}
}
