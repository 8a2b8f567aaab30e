package summary

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/punchdeck/attendance-backend-go/internal/domain/directory"
	"github.com/punchdeck/attendance-backend-go/internal/domain/punch"
	"github.com/punchdeck/attendance-backend-go/internal/domain/summary"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

type SummaryServiceImpl struct {
	normalizer punch.Normalizer
	source     punch.Source
	dir        directory.Directory
}

// NewSummaryService wires the pipeline. source may be nil when no terminal
// gateway is configured; FromDevice then fails fast.
func NewSummaryService(normalizer punch.Normalizer, source punch.Source, dir directory.Directory) summary.SummaryService {
	return &SummaryServiceImpl{
		normalizer: normalizer,
		source:     source,
		dir:        dir,
	}
}

// FromRaw implements summary.SummaryService.
func (s *SummaryServiceImpl) FromRaw(ctx context.Context, raw []byte, hints punch.ColumnHints, opts summary.Options) (summary.Report, error) {
	if err := opts.Validate(); err != nil {
		return summary.Report{}, err
	}

	normalized, err := s.normalizer.Normalize(ctx, raw, punch.NormalizeOptions{
		Hints:          hints,
		IgnoreWeekends: opts.IgnoreWeekends,
	})
	if err != nil {
		return summary.Report{}, err
	}

	return s.assemble(normalized.Events, opts, normalized.Dropped()), nil
}

// FromEvents implements summary.SummaryService.
func (s *SummaryServiceImpl) FromEvents(ctx context.Context, events []punch.Event, opts summary.Options) (summary.Report, error) {
	if err := opts.Validate(); err != nil {
		return summary.Report{}, err
	}

	dropped := 0
	if opts.IgnoreWeekends {
		kept := events[:0:0]
		for _, e := range events {
			if wd := e.Timestamp.Weekday(); wd == time.Saturday || wd == time.Sunday {
				dropped++
				continue
			}
			kept = append(kept, e)
		}
		events = kept
	}

	return s.assemble(events, opts, dropped), nil
}

// FromDevice implements summary.SummaryService.
func (s *SummaryServiceImpl) FromDevice(ctx context.Context, req summary.FetchRequest) (summary.Report, error) {
	if err := req.Validate(); err != nil {
		return summary.Report{}, err
	}
	if s.source == nil {
		return summary.Report{}, summary.ErrNoSourceConfigured
	}

	start, _ := time.Parse(dateLayout, req.Range.Start)
	end, _ := time.Parse(dateLayout, req.Range.End)

	events, err := s.source.FetchRange(ctx, start, end)
	if err != nil {
		return summary.Report{}, fmt.Errorf("%w: %w", punch.ErrDeviceFetch, err)
	}
	if len(events) == 0 {
		return summary.Report{}, summary.ErrNoDataFound
	}

	rng := req.Range
	return s.FromEvents(ctx, events, summary.Options{
		CheckInThreshold:  req.CheckInThreshold,
		CheckOutThreshold: req.CheckOutThreshold,
		IgnoreWeekends:    req.IgnoreWeekends,
		Range:             &rng,
	})
}

// assemble runs aggregation, classification, leave derivation and the final
// merge. Thresholds arrive pre-resolved on opts.
func (s *SummaryServiceImpl) assemble(events []punch.Event, opts summary.Options, dropped int) summary.Report {
	records, unknown := s.aggregate(events)

	rows := make([]summary.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, classify(rec, opts.CheckInThreshold, opts.CheckOutThreshold))
	}

	totals := s.deriveLeaves(rows, opts.Range)

	counters := summary.Counters{
		TotalRecords:  len(rows),
		DroppedEvents: dropped,
		UnknownUsers:  unknown,
	}
	for _, row := range rows {
		if row.Status == summary.StatusLate {
			counters.TotalLate++
		} else {
			counters.TotalOnTime++
		}
		if row.EarlyCheckout == summary.EarlyYes {
			counters.TotalEarlyCheckout++
		}
	}

	if unknown > 0 {
		slog.Info("dropped punches from unregistered users", "groups", unknown)
	}

	return summary.Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:        rows,
		Totals:      totals,
		Counters:    counters,
	}
}

type groupKey struct {
	user string
	date string
}

// aggregate groups events by (user, calendar date) and reduces each group to
// its earliest and latest punch by full timestamp. Groups whose user id is
// not integer-coercible or not in the directory are dropped; the count of
// dropped groups is returned alongside.
func (s *SummaryServiceImpl) aggregate(events []punch.Event) ([]summary.DailyRecord, int) {
	groups := make(map[groupKey]*summary.DailyRecord)
	for _, e := range events {
		key := groupKey{user: e.UserID, date: e.Timestamp.Format(dateLayout)}
		rec, ok := groups[key]
		if !ok {
			groups[key] = &summary.DailyRecord{
				UserID:   e.UserID,
				Date:     e.Date(),
				CheckIn:  e.Timestamp,
				CheckOut: e.Timestamp,
			}
			continue
		}
		if e.Timestamp.Before(rec.CheckIn) {
			rec.CheckIn = e.Timestamp
		}
		if e.Timestamp.After(rec.CheckOut) {
			rec.CheckOut = e.Timestamp
		}
	}

	records := make([]summary.DailyRecord, 0, len(groups))
	unknown := 0
	for _, rec := range groups {
		id, err := strconv.Atoi(strings.TrimSpace(rec.UserID))
		if err != nil {
			unknown++
			continue
		}
		name, ok := s.dir.Lookup(id)
		if !ok {
			unknown++
			continue
		}
		rec.NumericID = id
		rec.Name = name
		records = append(records, *rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].NumericID != records[j].NumericID {
			return records[i].NumericID < records[j].NumericID
		}
		return records[i].Date.Before(records[j].Date)
	})

	return records, unknown
}

// classify applies the thresholds to one daily record. The Late/Early
// booleans compare the full time of day including seconds; the minute deltas
// use hour and minute only, so a punch late by seconds alone reports Late
// with zero minutes. That mismatch is intentional and long-standing.
func classify(rec summary.DailyRecord, checkIn, checkOut summary.Clock) summary.Row {
	row := summary.Row{
		UserID:        rec.UserID,
		Name:          rec.Name,
		Date:          rec.Date.Format(dateLayout),
		CheckIn:       rec.CheckIn.Format(timeLayout),
		CheckOut:      rec.CheckOut.Format(timeLayout),
		Status:        summary.StatusOnTime,
		EarlyCheckout: summary.EarlyNo,
	}

	inSecs := secondsOfDay(rec.CheckIn)
	if inSecs > checkIn.Seconds() {
		row.Status = summary.StatusLate
	}
	if late := (rec.CheckIn.Hour()-checkIn.Hour)*60 + (rec.CheckIn.Minute() - checkIn.Minute); late > 0 {
		row.MinutesLate = late
	}

	outSecs := secondsOfDay(rec.CheckOut)
	if outSecs < checkOut.Seconds() {
		row.EarlyCheckout = summary.EarlyYes
	}
	if early := (checkOut.Hour-rec.CheckOut.Hour())*60 + (checkOut.Minute - rec.CheckOut.Minute()); early > 0 {
		row.MinutesEarly = early
	}

	return row
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// deriveLeaves walks the directory × date grid. With an explicit range the
// grid spans every calendar date in it; otherwise it covers only the
// distinct dates present in the classified rows, so a period nobody
// attended contributes no grid at all.
func (s *SummaryServiceImpl) deriveLeaves(rows []summary.Row, rng *summary.DateRange) []summary.LeaveTally {
	var dates []string
	if rng != nil {
		for _, d := range rng.Dates() {
			dates = append(dates, d.Format(dateLayout))
		}
	} else {
		seen := make(map[string]struct{})
		for _, row := range rows {
			if _, ok := seen[row.Date]; !ok {
				seen[row.Date] = struct{}{}
				dates = append(dates, row.Date)
			}
		}
		sort.Strings(dates)
	}

	attended := make(map[string]map[string]struct{})
	lates := make(map[string]int)
	earlies := make(map[string]int)
	for _, row := range rows {
		days, ok := attended[row.Name]
		if !ok {
			days = make(map[string]struct{})
			attended[row.Name] = days
		}
		days[row.Date] = struct{}{}
		if row.Status == summary.StatusLate {
			lates[row.Name]++
		}
		if row.EarlyCheckout == summary.EarlyYes {
			earlies[row.Name]++
		}
	}

	totals := make([]summary.LeaveTally, 0, s.dir.Len())
	for _, name := range s.dir.Names() {
		leaves := 0
		for _, date := range dates {
			if _, ok := attended[name][date]; !ok {
				leaves++
			}
		}
		totals = append(totals, summary.LeaveTally{
			Name:                name,
			TotalLates:          lates[name],
			TotalEarlyCheckouts: earlies[name],
			TotalLeaves:         leaves,
		})
	}
	return totals
}
