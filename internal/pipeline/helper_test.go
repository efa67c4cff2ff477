package pipeline_test

import (
	"context"
	"fmt"
	"time"

	"github.com/rohmanhakim/termdeck/internal/fetcher"
	"github.com/rohmanhakim/termdeck/internal/output"
	"github.com/rohmanhakim/termdeck/pkg/failure"
)

// scriptedFetcher replays canned definitions and fails on a chosen term.
// Repeated terms report a cache hit, mirroring the real fetcher.
type scriptedFetcher struct {
	failOn string
	seen   map[string]bool
}

func newScriptedFetcher(failOn string) *scriptedFetcher {
	return &scriptedFetcher{
		failOn: failOn,
		seen:   map[string]bool{},
	}
}

func (s *scriptedFetcher) Fetch(_ context.Context, term string) (fetcher.Definition, failure.ClassifiedError) {
	if term == s.failOn {
		return fetcher.Definition{}, &fetcher.FetchError{
			Message: "scripted failure",
			Term:    term,
			Cause:   fetcher.ErrCauseRequestFailed,
		}
	}
	fromCache := s.seen[term]
	s.seen[term] = true
	return fetcher.NewDefinition(fmt.Sprintf("definition of %s", term), fromCache), nil
}

func (s *scriptedFetcher) Close() failure.ClassifiedError {
	return nil
}

// capturingSink records every Write call for assertions.
type capturingSink struct {
	writes int
	path   string
	cards  []output.Card
	err    failure.ClassifiedError
}

func (c *capturingSink) Write(outputPath string, cards []output.Card) failure.ClassifiedError {
	c.writes++
	c.path = outputPath
	c.cards = cards
	return c.err
}

// recordingSink captures the progress event stream in order.
type recordingSink struct {
	events []string
}

func (r *recordingSink) RecordTermStarted(index int, total int, term string) {
	r.events = append(r.events, fmt.Sprintf("start %d/%d %s", index, total, term))
}

func (r *recordingSink) RecordTermFinished(index int, total int, term string, fromCache bool) {
	r.events = append(r.events, fmt.Sprintf("finish %d/%d %s cached=%t", index, total, term, fromCache))
}

func (r *recordingSink) RecordError(packageName string, action string, errorString string) {
	r.events = append(r.events, fmt.Sprintf("error %s %s", packageName, action))
}

func (r *recordingSink) RecordRunStats(totalTerms int, cacheHits int, cacheMisses int, _ time.Duration) {
	r.events = append(r.events, fmt.Sprintf("stats total=%d hits=%d misses=%d", totalTerms, cacheHits, cacheMisses))
}
