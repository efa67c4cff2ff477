package terms

import (
	"fmt"

	"github.com/rohmanhakim/termdeck/pkg/failure"
)

type TermsErrorCause string

const (
	ErrCauseFileMissing TermsErrorCause = "terms file does not exist"
	ErrCauseReadFailure TermsErrorCause = "failed to read terms file"
)

type TermsError struct {
	Message string
	Cause   TermsErrorCause
	Path    string
}

func (e *TermsError) Error() string {
	return fmt.Sprintf("terms error: %s: %s", e.Cause, e.Path)
}

func (e *TermsError) Severity() failure.Severity {
	return failure.SeverityFatal
}
