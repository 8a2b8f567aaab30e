package normalizer

import (
	"context"
	"testing"
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalize(t *testing.T, raw string, opts punch.NormalizeOptions) punch.NormalizeResult {
	t.Helper()
	result, err := NewNormalizer().Normalize(context.Background(), []byte(raw), opts)
	require.NoError(t, err)
	return result
}

func TestNormalize_CommaDelimitedWithHeader(t *testing.T) {
	t.Parallel()
	raw := "UserID,Timestamp\n1,2024-01-02 09:05:00\n2,2024-01-02 08:55:12\n"

	result := normalize(t, raw, punch.NormalizeOptions{})

	require.Len(t, result.Events, 2)
	assert.Equal(t, "1", result.Events[0].UserID)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC), result.Events[0].Timestamp)
	assert.Equal(t, 0, result.Dropped())
}

func TestNormalize_HeaderlessSingleLine(t *testing.T) {
	t.Parallel()
	// No header row: the first row is data and must not be swallowed.
	raw := "1,2024-01-02 09:05:00"

	result := normalize(t, raw, punch.NormalizeOptions{})

	require.Len(t, result.Events, 1)
	assert.Equal(t, "1", result.Events[0].UserID)
}

func TestNormalize_TabSemicolonPipe(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"tab":       "UserID\tTimestamp\n3\t2024-01-02 10:00:00\n",
		"semicolon": "UserID;Timestamp\n3;2024-01-02 10:00:00\n",
		"pipe":      "UserID|Timestamp\n3|2024-01-02 10:00:00\n",
	}
	for name, raw := range cases {
		result := normalize(t, raw, punch.NormalizeOptions{})
		require.Len(t, result.Events, 1, name)
		assert.Equal(t, "3", result.Events[0].UserID, name)
	}
}

func TestNormalize_WhitespaceFallback(t *testing.T) {
	t.Parallel()
	// Runs of spaces, no header. The timestamp cell itself is split on
	// whitespace, so date and time land in separate columns and only the
	// date survives as the timestamp.
	raw := "7   2024-01-02\n8   2024-01-03\n"

	result := normalize(t, raw, punch.NormalizeOptions{})

	require.Len(t, result.Events, 2)
	assert.Equal(t, "7", result.Events[0].UserID)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), result.Events[0].Timestamp)
}

func TestNormalize_ColumnSynonyms(t *testing.T) {
	t.Parallel()
	raw := "Punch Time,Extra,Employee ID\n2024-01-02 09:05:00,x,4\n"

	result := normalize(t, raw, punch.NormalizeOptions{})

	require.Len(t, result.Events, 1)
	assert.Equal(t, "4", result.Events[0].UserID)
	assert.Equal(t, 9, result.Events[0].Timestamp.Hour())
}

func TestNormalize_ColumnHints(t *testing.T) {
	t.Parallel()
	raw := "badge_no,when\n9,2024-01-02 09:00:00\n"

	result := normalize(t, raw, punch.NormalizeOptions{
		Hints: punch.ColumnHints{UserColumn: "badge_no", TimestampColumn: "when"},
	})

	require.Len(t, result.Events, 1)
	assert.Equal(t, "9", result.Events[0].UserID)
}

func TestNormalize_HintMissingColumn(t *testing.T) {
	t.Parallel()
	raw := "UserID,Timestamp\n1,2024-01-02 09:00:00\n"

	_, err := NewNormalizer().Normalize(context.Background(), []byte(raw), punch.NormalizeOptions{
		Hints: punch.ColumnHints{UserColumn: "badge_no", TimestampColumn: "when"},
	})

	var columnErr *punch.ColumnDetectionError
	require.ErrorAs(t, err, &columnErr)
	assert.Contains(t, columnErr.Columns, "UserID")
}

func TestNormalize_TimestampVariants(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"1,2024-01-02 09:05:00", time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC)},
		{"1,2024/01/02 09:05", time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC)},
		// Day-first wins over month-first for ambiguous values.
		{"1,03/04/2024 08:00:00", time.Date(2024, 4, 3, 8, 0, 0, 0, time.UTC)},
		{"1,15/01/2024 08:30:00", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"1,2024-01-02T09:05:00", time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		result := normalize(t, c.raw, punch.NormalizeOptions{})
		require.Len(t, result.Events, 1, c.raw)
		assert.Equal(t, c.want, result.Events[0].Timestamp, c.raw)
	}
}

func TestNormalize_CollapsesWhitespaceInTimestamp(t *testing.T) {
	t.Parallel()
	raw := "UserID,Timestamp\n1,2024-01-02    09:05:00\n"

	result := normalize(t, raw, punch.NormalizeOptions{})

	require.Len(t, result.Events, 1)
	assert.Equal(t, 9, result.Events[0].Timestamp.Hour())
}

func TestNormalize_DropsBadTimestamps(t *testing.T) {
	t.Parallel()
	raw := "UserID,Timestamp\n1,2024-01-02 09:05:00\n2,not-a-date\n3,\n"

	result := normalize(t, raw, punch.NormalizeOptions{})

	require.Len(t, result.Events, 1)
	assert.Equal(t, 1, result.DroppedTimestamps)
	assert.Equal(t, 1, result.DroppedBlank)
}

func TestNormalize_WeekendFilter(t *testing.T) {
	t.Parallel()
	// 2024-01-06 is a Saturday, 2024-01-07 a Sunday.
	raw := "UserID,Timestamp\n1,2024-01-05 09:00:00\n1,2024-01-06 09:00:00\n1,2024-01-07 09:00:00\n"

	result := normalize(t, raw, punch.NormalizeOptions{IgnoreWeekends: true})

	require.Len(t, result.Events, 1)
	assert.Equal(t, time.Friday, result.Events[0].Timestamp.Weekday())
	assert.Equal(t, 2, result.DroppedWeekend)
}

func TestNormalize_Windows1252Fallback(t *testing.T) {
	t.Parallel()
	// 0xE9 is é in Windows-1252 and invalid as standalone UTF-8.
	raw := []byte("UserID\tTimestamp\tName\n1\t2024-01-02 09:05:00\tJos\xe9\n")

	result, err := NewNormalizer().Normalize(context.Background(), raw, punch.NormalizeOptions{})

	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "1", result.Events[0].UserID)
}

func TestNormalize_UnparseableInput(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "garbage", "###\n###\n"} {
		_, err := NewNormalizer().Normalize(context.Background(), []byte(raw), punch.NormalizeOptions{})
		var parseErr *punch.ParseError
		require.ErrorAs(t, err, &parseErr, "input %q", raw)
	}
}

func TestNormalize_PreservesNonNumericUserIDs(t *testing.T) {
	t.Parallel()
	raw := "UserID,Timestamp\nEMP-7,2024-01-02 09:00:00\n"

	result := normalize(t, raw, punch.NormalizeOptions{})

	require.Len(t, result.Events, 1)
	assert.Equal(t, "EMP-7", result.Events[0].UserID)
}
