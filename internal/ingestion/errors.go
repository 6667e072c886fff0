package ingestion

import "fmt"

// SourceError represents a failure to read or parse an input document.
type SourceError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("source error: %s (%s)", e.Message, e.Path)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// FetchError represents a failure to fetch a job description from a URL.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error: %s (%s): %v", e.Message, e.URL, e.Cause)
	}
	return fmt.Sprintf("fetch error: %s (%s)", e.Message, e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
