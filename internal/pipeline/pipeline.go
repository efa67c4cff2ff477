package pipeline

import (
	"context"
	"time"

	"github.com/rohmanhakim/termdeck/internal/fetcher"
	"github.com/rohmanhakim/termdeck/internal/output"
	"github.com/rohmanhakim/termdeck/internal/progress"
	"github.com/rohmanhakim/termdeck/pkg/failure"
)

/*
Pipeline is the sole control-plane authority of a run.

Determinism and ordering guarantees:
- Terms are fetched strictly sequentially, in input order
- Duplicate terms are processed independently; the second occurrence
  resolves from the cache
- The output sink is invoked exactly once, with the full ordered card
  list; there is no streaming or partial output
- Progress emission is observational only and MUST NOT influence
  fetching, ordering or termination

Fetch errors are not caught here: they propagate and abort the whole
run. The caller's scoped fetcher release still flushes every definition
obtained before the fault, so partial progress is never lost even though
no partial output artifact is produced.
*/

type Pipeline struct {
	progressSink progress.Sink
}

func NewPipeline(progressSink progress.Sink) Pipeline {
	return Pipeline{
		progressSink: progressSink,
	}
}

// Run drives the fetcher across the ordered term sequence and hands the
// completed card list to the output sink.
func (p *Pipeline) Run(
	ctx context.Context,
	terms []string,
	f fetcher.Fetcher,
	sink output.Sink,
	outputPath string,
) (RunExecution, failure.ClassifiedError) {
	startTime := time.Now()
	total := len(terms)

	cards := make([]output.Card, 0, total)
	var cacheHits, cacheMisses int

	for i, term := range terms {
		p.progressSink.RecordTermStarted(i+1, total, term)

		definition, err := f.Fetch(ctx, term)
		if err != nil {
			p.progressSink.RecordError("pipeline", "Pipeline.Run", err.Error())
			return RunExecution{}, err
		}

		if definition.FromCache() {
			cacheHits++
		} else {
			cacheMisses++
		}
		p.progressSink.RecordTermFinished(i+1, total, term, definition.FromCache())

		cards = append(cards, output.NewCard(term, definition.Text()))
	}

	if err := sink.Write(outputPath, cards); err != nil {
		p.progressSink.RecordError("pipeline", "Pipeline.Run", err.Error())
		return RunExecution{}, err
	}

	stats := NewRunStats(total, cacheHits, cacheMisses, time.Since(startTime))
	p.progressSink.RecordRunStats(total, cacheHits, cacheMisses, stats.Duration())

	return NewRunExecution(cards, stats), nil
}
