package normalize

import (
	"fmt"

	"github.com/rohmanhakim/termdeck/pkg/failure"
)

type NormalizeErrorCause string

const (
	ErrCauseConversionFailure NormalizeErrorCause = "failed to convert HTML fragment"
)

type NormalizeError struct {
	Message string
	Cause   NormalizeErrorCause
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("normalize error: %s: %s", e.Cause, e.Message)
}

// Normalization failures are recoverable: the caller may fall back to the
// trimmed raw text rather than abort the run over cosmetics.
func (e *NormalizeError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}
