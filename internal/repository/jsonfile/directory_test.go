package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/punchdeck/attendance-backend-go/internal/domain/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempDirectory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "directory.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	t.Parallel()
	path := writeTempDirectory(t, `[{"id":1,"name":"Ishmal"},{"id":33,"name":"Abbas"}]`)

	dir, err := NewDirectoryLoader(path).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, dir.Len())
	name, ok := dir.Lookup(33)
	require.True(t, ok)
	assert.Equal(t, "Abbas", name)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := NewDirectoryLoader(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	assert.ErrorIs(t, err, directory.ErrDirectoryLoad)
}

func TestLoad_InvalidEntries(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		content string
		want    error
	}{
		"zero id":    {`[{"id":0,"name":"X"}]`, directory.ErrInvalidEntryID},
		"blank name": {`[{"id":5,"name":"  "}]`, directory.ErrBlankEntryName},
		"empty":      {`[]`, directory.ErrEmptyDirectory},
		"not json":   {`oops`, directory.ErrDirectoryLoad},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeTempDirectory(t, c.content)
			_, err := NewDirectoryLoader(path).Load(context.Background())
			assert.ErrorIs(t, err, c.want)
		})
	}
}
