package output

import (
	"fmt"

	"github.com/rohmanhakim/termdeck/pkg/failure"
)

type OutputErrorCause string

const (
	ErrCauseWriteFailure OutputErrorCause = "failed to write output artifact"
)

type OutputError struct {
	Message string
	Cause   OutputErrorCause
	Path    string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("output error: %s: %s: %s", e.Cause, e.Path, e.Message)
}

func (e *OutputError) Severity() failure.Severity {
	return failure.SeverityFatal
}
