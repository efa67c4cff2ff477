package fetcher

import (
	"context"

	"github.com/rohmanhakim/termdeck/pkg/failure"
)

// Fetcher resolves a vocabulary term to a definition, either from the
// local cache or from a remote generation endpoint.
type Fetcher interface {
	// Fetch returns the definition for term and whether it was served
	// from the cache. The hit/miss flag is observational only and must
	// never drive control flow.
	Fetch(ctx context.Context, term string) (Definition, failure.ClassifiedError)
	// Close releases the fetcher's resources. For cache-backed variants
	// this performs an unconditional cache flush.
	Close() failure.ClassifiedError
}

// Use runs fn with the fetcher and guarantees exactly one Close on every
// exit path. A Close failure never masks the error fn returned; when fn
// succeeds, the Close result is the result of Use. This is the only
// supported way to consume a fetcher: it ensures definitions obtained
// before a mid-run failure are still flushed to disk.
func Use(f Fetcher, fn func(Fetcher) error) (err error) {
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	return fn(f)
}
