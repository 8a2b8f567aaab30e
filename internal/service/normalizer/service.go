package normalizer

import (
	"context"
	"encoding/csv"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/punchdeck/attendance-backend-go/internal/domain/punch"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/validator"
	"golang.org/x/text/encoding/charmap"
)

// Column labels the detector matches against, case-insensitively, in
// priority order. First match wins.
var (
	userColumnNames = []string{
		"userid", "user id", "user_id", "employee id", "employeeid",
		"emp id", "empid", "enroll id", "enrollid", "ac-no", "ac no",
		"badge", "pin", "user", "id",
	}
	timestampColumnNames = []string{
		"timestamp", "time stamp", "datetime", "date time", "date_time",
		"punch time", "punchtime", "check time", "checktime", "time", "date",
	}
)

// Timestamp layouts tried per cell, in order. Unpadded day/month fields also
// accept zero-padded values. Year-first variants come before day-first, which
// come before month-first, so "03/04/2024" reads as 3 April.
var timestampLayouts = []string{
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02T15:04:05",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

type normalizerImpl struct{}

// NewNormalizer builds the punch-log normalizer. It is stateless; one
// instance serves all invocations.
func NewNormalizer() punch.Normalizer {
	return &normalizerImpl{}
}

// Normalize implements punch.Normalizer.
func (n *normalizerImpl) Normalize(ctx context.Context, raw []byte, opts punch.NormalizeOptions) (punch.NormalizeResult, error) {
	text := decode(raw)

	table, tried := sniffTable(text)
	if table == nil {
		return punch.NormalizeResult{}, &punch.ParseError{Tried: tried}
	}

	userIdx, tsIdx, err := detectColumns(table.header, opts.Hints)
	if err != nil {
		return punch.NormalizeResult{}, err
	}

	var result punch.NormalizeResult
	for _, row := range table.rows {
		user := strings.TrimSpace(cell(row, userIdx))
		tsRaw := strings.TrimSpace(cell(row, tsIdx))
		if user == "" || tsRaw == "" {
			result.DroppedBlank++
			continue
		}

		ts, ok := parseTimestamp(tsRaw)
		if !ok {
			result.DroppedTimestamps++
			continue
		}

		if opts.IgnoreWeekends && isWeekend(ts) {
			result.DroppedWeekend++
			continue
		}

		result.Events = append(result.Events, punch.Event{UserID: user, Timestamp: ts})
	}

	if dropped := result.Dropped(); dropped > 0 {
		slog.Info("normalizer dropped rows",
			"dropped_timestamps", result.DroppedTimestamps,
			"dropped_weekend", result.DroppedWeekend,
			"dropped_blank", result.DroppedBlank,
			"kept", len(result.Events),
		)
	}

	return result, nil
}

// decode recovers text from bytes of unknown encoding: strict UTF-8 first,
// then a permissive Windows-1252 pass that never fails.
func decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		// Single-byte decoders do not error; keep the fallback anyway.
		return string(raw)
	}
	return string(decoded)
}

// table is the intermediate parsed form: a header row of labels plus data
// rows. Synthesized headers (col_1, col_2, ...) mean the source had none.
type table struct {
	header []string
	rows   [][]string
}

// sniffTable tries each delimiter in order, then whitespace runs. It returns
// nil when no strategy yields at least two columns, along with the names of
// the strategies tried.
func sniffTable(text string) (*table, []string) {
	delims := []struct {
		name string
		r    rune
	}{
		{"tab", '\t'},
		{"comma", ','},
		{"semicolon", ';'},
		{"pipe", '|'},
	}

	tried := make([]string, 0, len(delims)+1)
	for _, d := range delims {
		tried = append(tried, d.name)
		rows, err := readDelimited(text, d.r)
		if err != nil || len(rows) == 0 || len(rows[0]) < 2 {
			continue
		}
		return coerceHeader(rows), tried
	}

	tried = append(tried, "whitespace")
	rows := splitWhitespace(text)
	if len(rows) == 0 || len(rows[0]) < 2 {
		return nil, tried
	}
	// Whitespace-split input carries no header row.
	return &table{header: positionalLabels(len(rows[0])), rows: rows}, tried
}

func readDelimited(text string, delim rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func splitWhitespace(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		rows = append(rows, whitespaceRun.Split(line, -1))
	}
	return rows
}

// coerceHeader decides whether the first row is a real header. A row whose
// cells all look like data (numbers or timestamps) gets positional labels
// instead, and stays in the data set.
func coerceHeader(rows [][]string) *table {
	first := rows[0]
	for _, c := range first {
		c = strings.TrimSpace(c)
		if validator.IsNumeric(c) {
			return &table{header: positionalLabels(len(first)), rows: rows}
		}
		if _, ok := parseTimestamp(c); ok {
			return &table{header: positionalLabels(len(first)), rows: rows}
		}
	}
	return &table{header: first, rows: rows[1:]}
}

func positionalLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = "col_" + strconv.Itoa(i+1)
	}
	return labels
}

// detectColumns resolves the user-id and timestamp columns: caller hints
// first, then the synonym lists, then positions 0 and 1.
func detectColumns(header []string, hints punch.ColumnHints) (int, int, error) {
	userIdx := findColumn(header, hints.UserColumn, userColumnNames)
	tsIdx := findColumn(header, hints.TimestampColumn, timestampColumnNames)

	if (userIdx < 0 || tsIdx < 0) && len(header) >= 2 && hints == (punch.ColumnHints{}) {
		userIdx, tsIdx = 0, 1
	}
	if userIdx < 0 || tsIdx < 0 || userIdx == tsIdx {
		return 0, 0, &punch.ColumnDetectionError{Columns: header}
	}
	return userIdx, tsIdx, nil
}

func findColumn(header []string, hint string, candidates []string) int {
	if hint != "" {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(hint)) {
				return i
			}
		}
		return -1
	}
	for _, want := range candidates {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return i
			}
		}
	}
	return -1
}

// parseTimestamp collapses internal whitespace runs and walks the layout
// list; a generic RFC 3339 / bare-date attempt runs last.
func parseTimestamp(s string) (time.Time, bool) {
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, true
	}
	if ts, err := time.Parse("2006-1-2", s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
