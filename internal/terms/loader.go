package terms

import (
	"bufio"
	"os"
	"strings"

	"github.com/rohmanhakim/termdeck/pkg/failure"
)

/*
Responsibilities
- Read the input vocabulary file
- Preserve input order, including duplicate terms
- Drop blank lines, trim surrounding whitespace per line

Duplicates are deliberately kept: the pipeline processes them
independently and the second occurrence hits the cache. Terms that differ
only in case or inner whitespace stay distinct literal keys.
*/

// Load reads the ordered term list from path.
func Load(path string) ([]string, failure.ClassifiedError) {
	file, err := os.Open(path)
	if err != nil {
		cause := ErrCauseReadFailure
		if os.IsNotExist(err) {
			cause = ErrCauseFileMissing
		}
		return nil, &TermsError{
			Message: err.Error(),
			Cause:   cause,
			Path:    path,
		}
	}
	defer file.Close()

	var terms []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &TermsError{
			Message: err.Error(),
			Cause:   ErrCauseReadFailure,
			Path:    path,
		}
	}

	return terms, nil
}
