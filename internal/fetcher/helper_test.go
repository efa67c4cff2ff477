package fetcher_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rohmanhakim/termdeck/internal/fetcher"
	"github.com/rohmanhakim/termdeck/pkg/failure"
)

// fakeFetcher scripts Fetch/Close outcomes and counts Close calls.
type fakeFetcher struct {
	fetchErr   failure.ClassifiedError
	closeErr   failure.ClassifiedError
	closeCalls int
}

func (f *fakeFetcher) Fetch(context.Context, string) (fetcher.Definition, failure.ClassifiedError) {
	if f.fetchErr != nil {
		return fetcher.Definition{}, f.fetchErr
	}
	return fetcher.NewDefinition("definition", false), nil
}

func (f *fakeFetcher) Close() failure.ClassifiedError {
	f.closeCalls++
	return f.closeErr
}

// nopSink satisfies progress.Sink without recording anything.
type nopSink struct{}

func (nopSink) RecordTermStarted(int, int, string)        {}
func (nopSink) RecordTermFinished(int, int, string, bool) {}
func (nopSink) RecordError(string, string, string)        {}
func (nopSink) RecordRunStats(int, int, int, time.Duration) {
}

// chatResponseBody builds a minimal successful chat-completions payload.
func chatResponseBody(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
}

// newCompletionsServer serves canned definitions and counts requests.
func newCompletionsServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}
