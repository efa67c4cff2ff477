package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/termdeck/pkg/failure"
	"github.com/rohmanhakim/termdeck/pkg/fileutil"
)

/*
Responsibilities
- Serialize the completed card sequence into a final artifact
- Invoked exactly once per run with the full, ordered list
- No streaming or partial output

Output Characteristics
- Deterministic content for identical input
- Overwrite-safe reruns
*/

// Sink consumes the completed (term, definition) sequence and serializes
// it to outputPath.
type Sink interface {
	Write(outputPath string, cards []Card) failure.ClassifiedError
}

// DetectFormat resolves FormatAuto from the output file extension:
// ".apkg" selects the Anki deck artifact, everything else plain text.
func DetectFormat(format Format, outputPath string) Format {
	if format != FormatAuto {
		return format
	}
	if fileutil.GetFileExtension(outputPath) == "apkg" {
		return FormatAnki
	}
	return FormatText
}

// Compile-time interface check
var _ Sink = (*TextSink)(nil)

// TextSink writes each pair as a labeled two-line block separated by a
// blank line.
type TextSink struct{}

func NewTextSink() TextSink {
	return TextSink{}
}

func (TextSink) Write(outputPath string, cards []Card) failure.ClassifiedError {
	var b strings.Builder
	for _, card := range cards {
		fmt.Fprintf(&b, "Term: %s\nDefinition: %s\n\n", card.Term(), card.Definition())
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			return &OutputError{
				Message: err.Error(),
				Cause:   ErrCauseWriteFailure,
				Path:    outputPath,
			}
		}
	}

	if err := fileutil.WriteFileAtomic(outputPath, []byte(b.String()), 0644); err != nil {
		return &OutputError{
			Message: err.Error(),
			Cause:   ErrCauseWriteFailure,
			Path:    outputPath,
		}
	}
	return nil
}

// Compile-time interface check
var _ Sink = (*DiscardSink)(nil)

// DiscardSink drops the card list. Used by dry runs.
type DiscardSink struct{}

func NewDiscardSink() DiscardSink {
	return DiscardSink{}
}

func (DiscardSink) Write(string, []Card) failure.ClassifiedError {
	return nil
}
