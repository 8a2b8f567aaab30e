package directory

import "errors"

// Directory domain errors
var (
	ErrEmptyDirectory = errors.New("employee directory is empty")
	ErrDirectoryLoad  = errors.New("failed to load employee directory")
	ErrInvalidEntryID = errors.New("employee id must be a positive integer")
	ErrBlankEntryName = errors.New("employee name must not be blank")
)
