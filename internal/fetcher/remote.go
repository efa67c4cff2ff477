package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rohmanhakim/termdeck/internal/cache"
	"github.com/rohmanhakim/termdeck/internal/normalize"
	"github.com/rohmanhakim/termdeck/internal/progress"
	"github.com/rohmanhakim/termdeck/internal/render"
	"github.com/rohmanhakim/termdeck/pkg/failure"
	"github.com/rohmanhakim/termdeck/pkg/timeutil"
)

/*
Responsibilities

- Consult the cache store before any network call
- Issue a single synchronous chat-completions request on a miss
- Normalize and cache successful responses as source markdown
- Render cached markdown to markup on every hit and miss
- Flush the cache opportunistically during the run and unconditionally
  on Close

Fetch Semantics

- A cache hit performs no network call and reports fromCache=true
- A non-2xx response is fatal and carries the raw response body
- No retries: a single remote failure aborts the run

The fetcher exclusively owns its cache store. No other component reads or
writes the cache file while the fetcher is open.
*/

const (
	// DefaultEndpoint is the OpenAI-compatible chat completions URL used
	// when no endpoint override is configured.
	DefaultEndpoint = "https://api.deepinfra.com/v1/openai/chat/completions"

	// DefaultModel is the generation model used when none is configured.
	DefaultModel = "deepseek-ai/DeepSeek-V3-0324"

	// DefaultFlushInterval is how much time must pass between
	// opportunistic cache flushes during a run.
	DefaultFlushInterval = 15 * time.Second

	systemPrompt = "You are an expert in startups and business education. " +
		"Provide concise definitions in Russian for key startup terminology, " +
		"suitable for inclusion in educational flashcards. Each definition " +
		"should be 1-2 sentences and clear to a university-level student. " +
		"Write the term name in bold, avoid any extraneous formatting, and " +
		"optionally add a short usage example as a separate paragraph."
)

// RemoteParam carries the construction inputs of a RemoteFetcher.
type RemoteParam struct {
	apiKey        string
	model         string
	endpoint      string
	cacheFile     string
	timeout       time.Duration
	flushInterval time.Duration
}

func NewRemoteParam(
	apiKey string,
	model string,
	endpoint string,
	cacheFile string,
	timeout time.Duration,
	flushInterval time.Duration,
) RemoteParam {
	return RemoteParam{
		apiKey:        apiKey,
		model:         model,
		endpoint:      endpoint,
		cacheFile:     cacheFile,
		timeout:       timeout,
		flushInterval: flushInterval,
	}
}

// Compile-time interface check
var _ Fetcher = (*RemoteFetcher)(nil)

type RemoteFetcher struct {
	apiKey        string
	model         string
	endpoint      string
	store         *cache.Store
	renderer      render.Renderer
	httpClient    *http.Client
	progressSink  progress.Sink
	flushInterval time.Duration
}

// NewRemoteFetcher validates the credential, loads the cache store and
// records the construction time as the last-flush timestamp. A missing or
// empty API key fails here, before any term is processed; an unparseable
// cache file is equally fatal.
func NewRemoteFetcher(
	param RemoteParam,
	progressSink progress.Sink,
) (*RemoteFetcher, failure.ClassifiedError) {
	if param.apiKey == "" {
		return nil, &FetchError{
			Message: "set the DEEPINFRA_API_KEY environment variable",
			Cause:   ErrCauseMissingAPIKey,
		}
	}

	model := param.model
	if model == "" {
		model = DefaultModel
	}
	endpoint := param.endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	flushInterval := param.flushInterval
	if flushInterval <= 0 {
		flushInterval = DefaultFlushInterval
	}

	store := cache.NewStore(param.cacheFile, timeutil.NewSystemClock())
	if err := store.Load(); err != nil {
		return nil, err
	}

	return &RemoteFetcher{
		apiKey:        param.apiKey,
		model:         model,
		endpoint:      endpoint,
		store:         store,
		renderer:      render.NewHTMLRenderer(),
		httpClient:    &http.Client{Timeout: param.timeout},
		progressSink:  progressSink,
		flushInterval: flushInterval,
	}, nil
}

func (r *RemoteFetcher) Fetch(ctx context.Context, term string) (Definition, failure.ClassifiedError) {
	if raw, ok := r.store.Get(term); ok {
		// Markup is re-rendered on every hit so renderer upgrades apply
		// to existing cache entries.
		return NewDefinition(r.renderer.Render(raw), true), nil
	}

	generated, err := r.requestDefinition(ctx, term)
	if err != nil {
		return Definition{}, err
	}

	cleaned, normErr := normalize.CleanDefinition(generated)
	if normErr != nil {
		if failure.IsFatal(normErr) {
			return Definition{}, normErr
		}
		// Cosmetic failure: cache the trimmed raw text instead.
		r.progressSink.RecordError("fetcher", "RemoteFetcher.Fetch", normErr.Error())
		cleaned = strings.TrimSpace(generated)
	}

	r.store.Put(term, cleaned)
	if flushErr := r.store.MaybeFlush(r.flushInterval); flushErr != nil {
		// The entry is still in memory and Close flushes unconditionally,
		// so an opportunistic flush failure does not abort the run.
		r.progressSink.RecordError("fetcher", "RemoteFetcher.Fetch", flushErr.Error())
	}

	return NewDefinition(r.renderer.Render(cleaned), false), nil
}

// Close flushes the cache store regardless of the flush interval,
// guaranteeing no fetched-but-unsaved definition is lost when the
// fetcher's scope ends.
func (r *RemoteFetcher) Close() failure.ClassifiedError {
	return r.store.Flush()
}

// requestDefinition performs the single synchronous chat-completions call
// for a term: a two-message conversation of the fixed system instruction
// and a user instruction embedding the term.
func (r *RemoteFetcher) requestDefinition(ctx context.Context, term string) (string, failure.ClassifiedError) {
	payload := chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(term)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &FetchError{
			Message: err.Error(),
			Term:    term,
			Cause:   ErrCauseNetworkFailure,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &FetchError{
			Message: fmt.Sprintf("failed to create request: %v", err),
			Term:    term,
			Cause:   ErrCauseNetworkFailure,
		}
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{
			Message: fmt.Sprintf("request failed: %v", err),
			Term:    term,
			Cause:   ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{
			Message: err.Error(),
			Term:    term,
			Cause:   ErrCauseReadResponseBodyError,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Carry the endpoint's error payload as diagnostic text.
		return "", &FetchError{
			Message: fmt.Sprintf("status %d: %s", resp.StatusCode, string(respBody)),
			Term:    term,
			Cause:   ErrCauseRequestFailed,
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &FetchError{
			Message: err.Error(),
			Term:    term,
			Cause:   ErrCauseResponseInvalid,
		}
	}
	if len(parsed.Choices) == 0 {
		return "", &FetchError{
			Message: string(respBody),
			Term:    term,
			Cause:   ErrCauseResponseEmpty,
		}
	}

	return parsed.Choices[0].Message.Content, nil
}

func userPrompt(term string) string {
	return fmt.Sprintf("Дай краткое определение термина «%s» в контексте стартапов и бизнеса на русском языке.", term)
}
