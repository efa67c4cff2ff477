package cache

import (
	"fmt"

	"github.com/rohmanhakim/termdeck/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCauseReadFailure   CacheErrorCause = "failed to read cache file"
	ErrCauseParseFailure  CacheErrorCause = "cache file is not valid JSON"
	ErrCauseEncodeFailure CacheErrorCause = "failed to encode cache"
	ErrCauseWriteFailure  CacheErrorCause = "failed to write cache file"
)

type CacheError struct {
	Message string
	Cause   CacheErrorCause
	Path    string
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error: %s: %s", e.Cause, e.Message)
}

// Every cache failure is fatal: a cache that cannot be read or written
// must surface immediately rather than degrade into re-fetching.
func (e *CacheError) Severity() failure.Severity {
	return failure.SeverityFatal
}
