package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/punchdeck/attendance-backend-go/internal/domain/punch"
	"github.com/punchdeck/attendance-backend-go/internal/domain/summary"
	"github.com/punchdeck/attendance-backend-go/internal/handler/http/response"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/validator"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/xlsx"
)

type AttendanceHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Summarize(w http.ResponseWriter, r *http.Request)
	Fetch(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	summaryService  summary.SummaryService
	defaultCheckIn  summary.Clock
	defaultCheckOut summary.Clock
	ignoreWeekends  bool
}

func NewAttendanceHandler(summaryService summary.SummaryService, checkIn, checkOut summary.Clock, ignoreWeekends bool) AttendanceHandler {
	return &attendanceHandlerImpl{
		summaryService:  summaryService,
		defaultCheckIn:  checkIn,
		defaultCheckOut: checkOut,
		ignoreWeekends:  ignoreWeekends,
	}
}

// errMalformedUpload marks request-shape failures that are the caller's fault.
var errMalformedUpload = errors.New("malformed upload request")

// requestOptions is the options envelope shared by upload, summarize and
// export. Absent fields fall back to the configured defaults.
type requestOptions struct {
	CheckInThreshold  string             `json:"checkin_threshold,omitempty"`
	CheckOutThreshold string             `json:"checkout_threshold,omitempty"`
	IgnoreWeekends    *bool              `json:"ignore_weekends,omitempty"`
	Range             *summary.DateRange `json:"range,omitempty"`
	Hints             punch.ColumnHints  `json:"hints"`
}

// resolve turns the wire options into pipeline options, applying defaults.
func (h *attendanceHandlerImpl) resolve(opts requestOptions) (summary.Options, punch.ColumnHints, error) {
	resolved := summary.Options{
		CheckInThreshold:  h.defaultCheckIn,
		CheckOutThreshold: h.defaultCheckOut,
		IgnoreWeekends:    h.ignoreWeekends,
		Range:             opts.Range,
	}

	var errs validator.ValidationErrors
	if opts.CheckInThreshold != "" {
		c, err := summary.ParseClock(opts.CheckInThreshold)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "checkin_threshold",
				Message: "must be a time of day in HH:MM or HH:MM:SS format",
			})
		} else {
			resolved.CheckInThreshold = c
		}
	}
	if opts.CheckOutThreshold != "" {
		c, err := summary.ParseClock(opts.CheckOutThreshold)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "checkout_threshold",
				Message: "must be a time of day in HH:MM or HH:MM:SS format",
			})
		} else {
			resolved.CheckOutThreshold = c
		}
	}
	if opts.IgnoreWeekends != nil {
		resolved.IgnoreWeekends = *opts.IgnoreWeekends
	}

	if len(errs) > 0 {
		return summary.Options{}, punch.ColumnHints{}, errs
	}
	return resolved, opts.Hints, nil
}

// readUpload extracts the raw punch log and options from either a multipart
// form (fields "file" and "options") or a plain request body.
func (h *attendanceHandlerImpl) readUpload(r *http.Request) ([]byte, requestOptions, error) {
	var opts requestOptions

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		// Punch-log exports are small; 10MB is generous.
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return nil, opts, fmt.Errorf("%w: %v", errMalformedUpload, err)
		}

		if optsJSON := r.FormValue("options"); optsJSON != "" {
			if err := json.Unmarshal([]byte(optsJSON), &opts); err != nil {
				return nil, opts, fmt.Errorf("%w: invalid options field: %v", errMalformedUpload, err)
			}
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return nil, opts, punch.ErrEmptyInput
			}
			return nil, opts, fmt.Errorf("%w: %v", errMalformedUpload, err)
		}
		defer file.Close()

		raw, err := io.ReadAll(file)
		if err != nil {
			return nil, opts, fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return raw, opts, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, opts, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(raw) == 0 {
		return nil, opts, punch.ErrEmptyInput
	}
	return raw, opts, nil
}

// Upload implements AttendanceHandler.
func (h *attendanceHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportFromUpload(r)
	if err != nil {
		h.handleUploadError(w, err)
		return
	}
	response.SuccessWithMessage(w, fmt.Sprintf("Processed %d records", report.Counters.TotalRecords), report)
}

// Summarize implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Events []punch.Event `json:"events"`
		requestOptions
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to unmarshal summarize request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	opts, _, err := h.resolve(req.requestOptions)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.summaryService.FromEvents(r.Context(), req.Events, opts)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

// Fetch implements AttendanceHandler.
func (h *attendanceHandlerImpl) Fetch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Range             summary.DateRange `json:"range"`
		IgnoreWeekends    *bool             `json:"ignore_weekends,omitempty"`
		CheckInThreshold  string            `json:"checkin_threshold,omitempty"`
		CheckOutThreshold string            `json:"checkout_threshold,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to unmarshal fetch request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	opts, _, err := h.resolve(requestOptions{
		CheckInThreshold:  req.CheckInThreshold,
		CheckOutThreshold: req.CheckOutThreshold,
		IgnoreWeekends:    req.IgnoreWeekends,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	fetchReq := summary.FetchRequest{
		Range:             req.Range,
		IgnoreWeekends:    opts.IgnoreWeekends,
		CheckInThreshold:  opts.CheckInThreshold,
		CheckOutThreshold: opts.CheckOutThreshold,
	}

	report, err := h.summaryService.FromDevice(r.Context(), fetchReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

// Export implements AttendanceHandler. Same inputs as Upload; the response
// is the styled workbook instead of JSON.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportFromUpload(r)
	if err != nil {
		h.handleUploadError(w, err)
		return
	}

	workbook, err := xlsx.WriteDetail(report.Rows)
	if err != nil {
		slog.Error("Failed to build workbook", "error", err)
		response.InternalServerError(w, "Failed to build spreadsheet")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance_%s.xlsx"`, report.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (h *attendanceHandlerImpl) handleUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, errMalformedUpload) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	response.HandleError(w, err)
}

func (h *attendanceHandlerImpl) reportFromUpload(r *http.Request) (summary.Report, error) {
	raw, reqOpts, err := h.readUpload(r)
	if err != nil {
		return summary.Report{}, err
	}

	opts, hints, err := h.resolve(reqOpts)
	if err != nil {
		return summary.Report{}, err
	}

	return h.summaryService.FromRaw(r.Context(), raw, hints, opts)
}
