package punch

import (
	"errors"
	"fmt"
	"strings"
)

// Punch domain errors
var (
	// ErrEmptyInput is returned for a zero-length or whitespace-only buffer.
	ErrEmptyInput = errors.New("punch log input is empty")

	// ErrDeviceFetch wraps connection or IO failures against the terminal
	// gateway. Terminal for the invocation; never retried by the core.
	ErrDeviceFetch = errors.New("failed to fetch punches from terminal")
)

// ParseError means no delimiter or whitespace strategy produced a table with
// at least two columns. It aborts the whole pipeline.
type ParseError struct {
	Tried []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse punch log: no strategy yielded a table with >=2 columns (tried %s)",
		strings.Join(e.Tried, ", "))
}

// ColumnDetectionError means the user-id or timestamp column could not be
// found by name or position. It carries the discovered labels for diagnosis.
type ColumnDetectionError struct {
	Columns []string
}

func (e *ColumnDetectionError) Error() string {
	return fmt.Sprintf("could not detect user-id and timestamp columns in [%s]",
		strings.Join(e.Columns, ", "))
}
