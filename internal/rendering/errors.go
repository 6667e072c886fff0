// Package rendering writes rebuilt documents back to .docx and renders
// fixed-layout PDF copies through an ordered chain of converter strategies.
package rendering

import "fmt"

// WriteError represents a failure writing the rebuilt document.
type WriteError struct {
	Path    string
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("write error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("write error: %s (%s)", e.Message, e.Path)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// RenderError represents a PDF rendering failure after all strategies were
// exhausted.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
