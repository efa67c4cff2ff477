package fetcher

import (
	"context"
	"fmt"

	"github.com/rohmanhakim/termdeck/pkg/failure"
)

// Compile-time interface check
var _ Fetcher = (*StubFetcher)(nil)

// StubFetcher deterministically derives a synthetic definition from the
// term itself. It never touches the network or the cache and always
// reports a miss. Used to exercise the pipeline without cost.
type StubFetcher struct{}

func NewStubFetcher() StubFetcher {
	return StubFetcher{}
}

func (StubFetcher) Fetch(_ context.Context, term string) (Definition, failure.ClassifiedError) {
	return NewDefinition(fmt.Sprintf("Dummy definition for term %q", term), false), nil
}

func (StubFetcher) Close() failure.ClassifiedError {
	return nil
}
