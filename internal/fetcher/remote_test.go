package fetcher_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/termdeck/internal/cache"
	"github.com/rohmanhakim/termdeck/internal/fetcher"
)

func newRemoteFetcher(t *testing.T, endpoint string, cacheFile string) *fetcher.RemoteFetcher {
	t.Helper()
	param := fetcher.NewRemoteParam(
		"test-key",
		"test-model",
		endpoint,
		cacheFile,
		5*time.Second,
		fetcher.DefaultFlushInterval,
	)
	remote, err := fetcher.NewRemoteFetcher(param, nopSink{})
	require.NoError(t, err)
	return remote
}

func TestNewRemoteFetcher_RequiresAPIKey(t *testing.T) {
	param := fetcher.NewRemoteParam("", "", "", filepath.Join(t.TempDir(), "cache.json"), 0, 0)

	_, err := fetcher.NewRemoteFetcher(param, nopSink{})
	require.Error(t, err)

	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, fetcher.ErrCauseMissingAPIKey, fetchErr.Cause)
}

func TestNewRemoteFetcher_CorruptCacheIsFatal(t *testing.T) {
	cacheFile := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(cacheFile, []byte("not json"), 0644))

	param := fetcher.NewRemoteParam("test-key", "", "", cacheFile, 0, 0)
	_, err := fetcher.NewRemoteFetcher(param, nopSink{})
	require.Error(t, err)

	var cacheErr *cache.CacheError
	require.ErrorAs(t, err, &cacheErr)
	assert.Equal(t, cache.ErrCauseParseFailure, cacheErr.Cause)
}

func TestFetch_CacheIdempotence(t *testing.T) {
	var calls atomic.Int64
	server := newCompletionsServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, chatResponseBody("**Runway** — запас времени."))
	})

	remote := newRemoteFetcher(t, server.URL, filepath.Join(t.TempDir(), "cache.json"))

	first, err := remote.Fetch(context.Background(), "Runway")
	require.NoError(t, err)
	assert.False(t, first.FromCache())

	second, err := remote.Fetch(context.Background(), "Runway")
	require.NoError(t, err)
	assert.True(t, second.FromCache())

	assert.Equal(t, int64(1), calls.Load(), "second fetch must be served from memory")
	assert.Equal(t, first.Text(), second.Text())
}

func TestFetch_SendsTwoMessageConversation(t *testing.T) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type request struct {
		Model    string    `json:"model"`
		Messages []message `json:"messages"`
	}

	var got request
	var auth string
	server := newCompletionsServer(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		io.WriteString(w, chatResponseBody("ответ"))
	})

	remote := newRemoteFetcher(t, server.URL, filepath.Join(t.TempDir(), "cache.json"))
	_, err := remote.Fetch(context.Background(), "Burn rate")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "Burn rate")
}

func TestFetch_NonSuccessCarriesResponseBody(t *testing.T) {
	server := newCompletionsServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		io.WriteString(w, `{"error":"quota exceeded"}`)
	})

	remote := newRemoteFetcher(t, server.URL, filepath.Join(t.TempDir(), "cache.json"))
	_, err := remote.Fetch(context.Background(), "Runway")
	require.Error(t, err)

	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, fetcher.ErrCauseRequestFailed, fetchErr.Cause)
	assert.Contains(t, fetchErr.Message, "quota exceeded")
}

func TestFetch_RendersMarkupFromCachedMarkdown(t *testing.T) {
	server := newCompletionsServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, chatResponseBody("**Runway** — запас времени до исчерпания денег."))
	})

	cacheFile := filepath.Join(t.TempDir(), "cache.json")
	remote := newRemoteFetcher(t, server.URL, cacheFile)

	definition, err := remote.Fetch(context.Background(), "Runway")
	require.NoError(t, err)
	assert.Contains(t, definition.Text(), "<strong>Runway</strong>")

	// The cache keeps source markdown, not markup.
	require.NoError(t, remote.Close())
	raw, readErr := os.ReadFile(cacheFile)
	require.NoError(t, readErr)

	entries := map[string]string{}
	require.NoError(t, json.Unmarshal(raw, &entries))
	assert.Equal(t, "**Runway** — запас времени до исчерпания денег.", entries["Runway"])
}

func TestUse_ScopedReleasePersistsPriorTermsOnFailure(t *testing.T) {
	var calls atomic.Int64
	server := newCompletionsServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Third remote call fails.
		if calls.Add(1) == 3 {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, "upstream exploded")
			return
		}
		io.WriteString(w, chatResponseBody("определение"))
	})

	cacheFile := filepath.Join(t.TempDir(), "cache.json")
	remote := newRemoteFetcher(t, server.URL, cacheFile)

	terms := []string{"Runway", "Burn rate", "Pivot", "Churn", "MVP"}
	err := fetcher.Use(remote, func(f fetcher.Fetcher) error {
		for _, term := range terms {
			if _, fetchErr := f.Fetch(context.Background(), term); fetchErr != nil {
				return fetchErr
			}
		}
		return nil
	})
	require.Error(t, err)

	raw, readErr := os.ReadFile(cacheFile)
	require.NoError(t, readErr)
	entries := map[string]string{}
	require.NoError(t, json.Unmarshal(raw, &entries))

	assert.Len(t, entries, 2, "definitions fetched before the fault must be on disk")
	assert.Contains(t, entries, "Runway")
	assert.Contains(t, entries, "Burn rate")
}
