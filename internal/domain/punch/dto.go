package punch

// ========================================
// NORMALIZER DTOs
// ========================================

// ColumnHints optionally pins the user-id and timestamp columns by label.
// When empty, detection falls back to the built-in synonym lists and then to
// positional assignment (column 0 = user id, column 1 = timestamp).
type ColumnHints struct {
	UserColumn      string `json:"user_column,omitempty"`
	TimestampColumn string `json:"timestamp_column,omitempty"`
}

// NormalizeOptions controls a single normalization pass.
type NormalizeOptions struct {
	Hints ColumnHints `json:"hints"`

	// IgnoreWeekends drops events whose own date falls on Saturday or
	// Sunday. It filters events only; it never removes weekend dates from
	// an explicitly requested date range, so a requested range that spans
	// a weekend still counts those days as leave.
	IgnoreWeekends bool `json:"ignore_weekends"`
}

// NormalizeResult carries the surviving events plus counts of what was
// discarded, so callers can observe data loss instead of it being invisible.
type NormalizeResult struct {
	Events []Event `json:"events"`

	// DroppedTimestamps counts rows whose timestamp matched no known
	// layout and failed the generic fallback parse.
	DroppedTimestamps int `json:"dropped_timestamps"`

	// DroppedWeekend counts rows removed by the weekend filter.
	DroppedWeekend int `json:"dropped_weekend"`

	// DroppedBlank counts rows with an empty user or timestamp cell.
	DroppedBlank int `json:"dropped_blank"`
}

// Dropped is the total number of input rows that did not survive.
func (r NormalizeResult) Dropped() int {
	return r.DroppedTimestamps + r.DroppedWeekend + r.DroppedBlank
}
