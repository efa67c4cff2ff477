package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/termdeck/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseMissingAPIKey         FetchErrorCause = "API key is required"
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseRequestFailed         FetchErrorCause = "endpoint returned non-success status"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseResponseInvalid       FetchErrorCause = "malformed endpoint response"
	ErrCauseResponseEmpty         FetchErrorCause = "endpoint returned no choices"
)

// FetchError carries the endpoint's error payload in Message when the
// cause is a non-success response, so the diagnostic text reaches the
// user unchanged.
type FetchError struct {
	Message string
	Term    string
	Cause   FetchErrorCause
}

func (e *FetchError) Error() string {
	if e.Term == "" {
		return fmt.Sprintf("fetcher error: %s: %s", e.Cause, e.Message)
	}
	return fmt.Sprintf("fetcher error for term %q: %s: %s", e.Term, e.Cause, e.Message)
}

// A single remote failure aborts the run; there is no retry anywhere.
func (e *FetchError) Severity() failure.Severity {
	return failure.SeverityFatal
}
