package textract

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound reports a missing input document.
	ErrSourceNotFound = errors.New("source document not found")

	// ErrBackendUnavailable reports that the requested backend (or every
	// backend in the priority list) cannot run on this system.
	ErrBackendUnavailable = errors.New("text backend unavailable")
)

// ExtractionError wraps a backend failure with the document it occurred on.
type ExtractionError struct {
	Path    string
	Backend string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s with backend %s: %v", e.Path, e.Backend, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
