package summary

import (
	"time"

	"github.com/punchdeck/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// SUMMARY DTOs
// ========================================

// DateRange is an inclusive calendar range, both bounds "2006-01-02".
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r DateRange) Validate() error {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(r.Start)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be a date in YYYY-MM-DD format",
		})
	}
	end, ok := validator.IsValidDate(r.End)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be a date in YYYY-MM-DD format",
		})
	}
	if len(errs) == 0 && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start date cannot be after end date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates expands the range into every calendar date it covers, ascending.
// Validate must have passed first.
func (r DateRange) Dates() []time.Time {
	start, _ := time.Parse("2006-01-02", r.Start)
	end, _ := time.Parse("2006-01-02", r.End)
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Options controls one summarization pass. Thresholds default from config
// when zero-valued requests come in through the HTTP layer.
type Options struct {
	// CheckInThreshold marks a day Late when the first punch's time of day
	// is strictly after it.
	CheckInThreshold Clock `json:"-"`

	// CheckOutThreshold marks a day an early checkout when the last
	// punch's time of day is strictly before it.
	CheckOutThreshold Clock `json:"-"`

	// IgnoreWeekends is forwarded to the normalizer: Saturday and Sunday
	// events are dropped before aggregation.
	IgnoreWeekends bool `json:"ignore_weekends"`

	// Range, when set, drives leave derivation over the full calendar
	// range. When nil, leave derivation uses only the distinct dates
	// observed in the classified rows, so an employee absent for the
	// whole period contributes leaves only for dates someone attended.
	Range *DateRange `json:"range,omitempty"`
}

func (o Options) Validate() error {
	if o.Range != nil {
		return o.Range.Validate()
	}
	return nil
}

// FetchRequest asks for a device fetch followed by summarization. The
// thresholds are resolved by the HTTP layer before the service sees them.
type FetchRequest struct {
	Range          DateRange `json:"range"`
	IgnoreWeekends bool      `json:"ignore_weekends"`

	CheckInThreshold  Clock `json:"-"`
	CheckOutThreshold Clock `json:"-"`
}

func (r FetchRequest) Validate() error {
	return r.Range.Validate()
}

// Row is one line of the detail table: one user, one date, classified.
type Row struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Date          string `json:"date"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Status        string `json:"status"`
	MinutesLate   int    `json:"minutes_late"`
	EarlyCheckout string `json:"early_checkout"`
	MinutesEarly  int    `json:"minutes_early"`
}

// LeaveTally is one line of the totals table: per-employee counts over the
// effective date range. Every directory entry gets a line, including
// employees with zero attendance rows.
type LeaveTally struct {
	Name                string `json:"name"`
	TotalLates          int    `json:"total_lates"`
	TotalEarlyCheckouts int    `json:"total_early_checkouts"`
	TotalLeaves         int    `json:"total_leaves"`
}

// Counters are the scalar dashboard metrics for one report.
type Counters struct {
	TotalRecords       int `json:"total_records"`
	TotalLate          int `json:"total_late"`
	TotalOnTime        int `json:"total_on_time"`
	TotalEarlyCheckout int `json:"total_early_checkout"`
	DroppedEvents      int `json:"dropped_events"`
	UnknownUsers       int `json:"unknown_users"`
}

// Report is the full output of one pipeline invocation.
type Report struct {
	ID          string       `json:"id"`
	GeneratedAt string       `json:"generated_at"`
	Rows        []Row        `json:"rows"`
	Totals      []LeaveTally `json:"totals"`
	Counters    Counters     `json:"counters"`
}

// DetailHeader is the column order of the detail table and the spreadsheet.
var DetailHeader = []string{
	"UserID", "Name", "Date", "CheckIn", "CheckOut",
	"Status", "Minutes Late", "Early Checkout", "Minutes Early",
}
