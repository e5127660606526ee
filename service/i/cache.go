package i

import "context"

// PNGCache stores rendered images by key.
type PNGCache interface {
	// Get returns the cached image for key. A miss is reported with false and a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key until the cache's time to live passes.
	Set(ctx context.Context, key string, data []byte) error

	// Lock takes a lock named after key, shared by every process using the cache.
	// The returned function releases it.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
