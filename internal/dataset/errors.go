package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound is returned when an input dataset path does not exist.
var ErrFileNotFound = errors.New("dataset file not found")

// ErrUnsupported indicates a file extension the loader cannot read.
var ErrUnsupported = errors.New("unsupported dataset format")

// MissingColumnError reports a required column that the table header does not provide.
type MissingColumnError struct {
	Column    string
	File      string
	Available []string
}

func (e *MissingColumnError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("missing column %q", e.Column))
	if e.File != "" {
		b.WriteString(fmt.Sprintf(" in %s", e.File))
	}
	if len(e.Available) > 0 {
		b.WriteString(fmt.Sprintf(" (available: %s)", strings.Join(e.Available, ", ")))
	}
	return b.String()
}
