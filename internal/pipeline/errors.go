package pipeline

import "fmt"

// InputError represents invalid or unusable run input: a missing source
// document, an empty resume, or a too-short job description. No partial
// output is produced when one is returned.
type InputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input error: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("input error: %s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// OutputError represents a failure to write the rebuilt document. The
// original input file is never touched when one is returned.
type OutputError struct {
	Path    string
	Message string
	Cause   error
}

func (e *OutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("output error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("output error: %s (%s)", e.Message, e.Path)
}

func (e *OutputError) Unwrap() error {
	return e.Cause
}
