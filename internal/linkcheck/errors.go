package linkcheck

import (
	"errors"
	"fmt"
)

// ErrRootNotFound is returned by Scan when the documentation root does not
// exist or is not a directory. The scan outcome is model.Halted.
var ErrRootNotFound = errors.New("documentation root not found")

// DocumentReadError reports a document that could not be read.
// It is recorded in the scan result and does not stop the scan.
type DocumentReadError struct {
	// Path is the document path relative to the root.
	Path string

	// Err is the underlying filesystem error.
	Err error
}

// Error implements the error interface.
func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentReadError) Unwrap() error {
	return e.Err
}
