package progress

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

/*
Progress Observed
- Per-term start and finish
- Cache hit/miss classification
- Errors with their originating package and action
- Final run statistics

Determinism guarantees:
- Progress reporting does not affect control flow
- The hit/miss flag is consumed for observability only
- Events are recorded synchronously in the order terms are processed

Progress is write-only.
No component may read recorded progress to influence fetching decisions.
*/

// Sink captures structured run events.
// It must not:
// - perform I/O decisions
// - affect control flow
// - impose a logging backend
type Sink interface {
	RecordTermStarted(index int, total int, term string)
	RecordTermFinished(index int, total int, term string, fromCache bool)
	RecordError(packageName string, action string, errorString string)
	RecordRunStats(totalTerms int, cacheHits int, cacheMisses int, duration time.Duration)
}

// Compile-time interface check
var _ Sink = (*ConsoleReporter)(nil)

// ConsoleReporter logs run events through apex/log.
type ConsoleReporter struct{}

func NewConsoleReporter() ConsoleReporter {
	return ConsoleReporter{}
}

func (ConsoleReporter) RecordTermStarted(index int, total int, term string) {
	log.WithFields(log.Fields{
		"index": index,
		"total": total,
	}).Debugf("fetching definition for term: %s", term)
}

func (ConsoleReporter) RecordTermFinished(index int, total int, term string, fromCache bool) {
	status := "cache miss"
	if fromCache {
		status = "cache hit"
	}
	log.WithFields(log.Fields{
		"index": index,
		"total": total,
	}).Infof("[%d/%d] %s for term: %s", index, total, status, term)
}

func (ConsoleReporter) RecordError(packageName string, action string, errorString string) {
	log.WithFields(log.Fields{
		"package": packageName,
		"action":  action,
	}).Error(errorString)
}

func (ConsoleReporter) RecordRunStats(totalTerms int, cacheHits int, cacheMisses int, duration time.Duration) {
	log.WithFields(log.Fields{
		"hits":   cacheHits,
		"misses": cacheMisses,
	}).Infof("processed %d terms in %v", totalTerms, duration.Round(time.Millisecond))
}

// InitLogger sets up Apex with a custom handler and a log level from the
// TERMDECK_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("TERMDECK_LOG"))
	if level == "" {
		level = "INFO"
	}
	log.SetHandler(&plainHandler{})
	log.SetLevelFromString(level)
}

// plainHandler formats log messages and writes them to stderr.
type plainHandler struct{}

// HandleLog implements the log.Handler interface
func (h *plainHandler) HandleLog(e *log.Entry) error {
	level := strings.ToUpper(e.Level.String())
	fmt.Fprintf(os.Stderr, "%.1s %s\n", level, e.Message)
	return nil
}
