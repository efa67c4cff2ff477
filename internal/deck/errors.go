package deck

import (
	"fmt"

	"github.com/rohmanhakim/termdeck/pkg/failure"
)

type DeckErrorCause string

const (
	ErrCauseCollectionBuild DeckErrorCause = "failed to build collection database"
	ErrCauseArchiveWrite    DeckErrorCause = "failed to write deck archive"
)

type DeckError struct {
	Message string
	Cause   DeckErrorCause
	Path    string
}

func (e *DeckError) Error() string {
	return fmt.Sprintf("deck error: %s: %s", e.Cause, e.Message)
}

func (e *DeckError) Severity() failure.Severity {
	return failure.SeverityFatal
}
