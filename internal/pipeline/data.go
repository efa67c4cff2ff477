package pipeline

import (
	"time"

	"github.com/rohmanhakim/termdeck/internal/output"
)

type RunExecution struct {
	cards []output.Card
	stats RunStats
}

func NewRunExecution(cards []output.Card, stats RunStats) RunExecution {
	return RunExecution{
		cards: cards,
		stats: stats,
	}
}

func (r RunExecution) Cards() []output.Card {
	cards := make([]output.Card, len(r.cards))
	copy(cards, r.cards)
	return cards
}

func (r RunExecution) Stats() RunStats {
	return r.stats
}

// RunStats is a terminal, derived summary of a completed run. It is
// computed once after the loop finishes and must not influence fetching.
type RunStats struct {
	totalTerms  int
	cacheHits   int
	cacheMisses int
	duration    time.Duration
}

func NewRunStats(totalTerms int, cacheHits int, cacheMisses int, duration time.Duration) RunStats {
	return RunStats{
		totalTerms:  totalTerms,
		cacheHits:   cacheHits,
		cacheMisses: cacheMisses,
		duration:    duration,
	}
}

func (s RunStats) TotalTerms() int {
	return s.totalTerms
}

func (s RunStats) CacheHits() int {
	return s.cacheHits
}

func (s RunStats) CacheMisses() int {
	return s.cacheMisses
}

func (s RunStats) Duration() time.Duration {
	return s.duration
}
