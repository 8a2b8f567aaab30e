package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/punchdeck/attendance-backend-go/internal/domain/directory"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/validator"
)

type directoryLoader struct {
	path string
}

// NewDirectoryLoader reads the employee registry from a JSON file: an array
// of {"id": n, "name": "..."} objects.
func NewDirectoryLoader(path string) directory.Loader {
	return &directoryLoader{path: path}
}

// Load implements directory.Loader.
func (l *directoryLoader) Load(ctx context.Context) (directory.Directory, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return directory.Directory{}, fmt.Errorf("%w: %w", directory.ErrDirectoryLoad, err)
	}

	var entries []directory.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return directory.Directory{}, fmt.Errorf("%w: %w", directory.ErrDirectoryLoad, err)
	}

	for _, e := range entries {
		if e.ID <= 0 {
			return directory.Directory{}, fmt.Errorf("%w: id %d", directory.ErrInvalidEntryID, e.ID)
		}
		if validator.IsEmpty(e.Name) {
			return directory.Directory{}, fmt.Errorf("%w: id %d", directory.ErrBlankEntryName, e.ID)
		}
	}

	dir := directory.New(entries)
	if dir.Len() == 0 {
		return directory.Directory{}, directory.ErrEmptyDirectory
	}
	return dir, nil
}
