package failure

type Severity int

// pipeline control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

// ClassifiedError is the error contract shared by every typed error in the
// module. Severity expresses whether the run can survive the failure;
// packages classify, the caller decides.
type ClassifiedError interface {
	error
	Severity() Severity
}

// IsFatal reports whether err must abort the current run.
// A nil error is never fatal.
func IsFatal(err ClassifiedError) bool {
	if err == nil {
		return false
	}
	return err.Severity() == SeverityFatal
}
