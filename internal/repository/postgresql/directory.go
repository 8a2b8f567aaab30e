package postgresql

import (
	"context"
	"fmt"

	"github.com/punchdeck/attendance-backend-go/internal/domain/directory"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/database"
)

type directoryLoader struct {
	db *database.DB
}

// NewDirectoryLoader reads the employee registry from the employees table.
// The table is reference data; this loader never writes.
func NewDirectoryLoader(db *database.DB) directory.Loader {
	return &directoryLoader{db: db}
}

// Load implements directory.Loader.
func (l *directoryLoader) Load(ctx context.Context) (directory.Directory, error) {
	query := `
		SELECT id, name
		FROM employees
		ORDER BY id
	`

	rows, err := l.db.Query(ctx, query)
	if err != nil {
		return directory.Directory{}, fmt.Errorf("%w: %w", directory.ErrDirectoryLoad, err)
	}
	defer rows.Close()

	var entries []directory.Entry
	for rows.Next() {
		var e directory.Entry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return directory.Directory{}, fmt.Errorf("failed to scan directory entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return directory.Directory{}, fmt.Errorf("%w: %w", directory.ErrDirectoryLoad, err)
	}

	dir := directory.New(entries)
	if dir.Len() == 0 {
		return directory.Directory{}, directory.ErrEmptyDirectory
	}
	return dir, nil
}
