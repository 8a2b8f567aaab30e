package summary

import (
	"context"

	"github.com/punchdeck/attendance-backend-go/internal/domain/punch"
)

// SummaryService runs the attendance pipeline: normalize (for raw input),
// aggregate per user/day, classify against the thresholds, derive leaves and
// assemble the report. Each call owns its data; nothing persists between
// invocations.
type SummaryService interface {
	// FromRaw summarizes an uploaded punch-log export.
	FromRaw(ctx context.Context, raw []byte, hints punch.ColumnHints, opts Options) (Report, error)

	// FromEvents summarizes punches already fetched by a collaborator.
	FromEvents(ctx context.Context, events []punch.Event, opts Options) (Report, error)

	// FromDevice fetches the requested range from the terminal source and
	// summarizes it. The fetched range also drives leave derivation.
	FromDevice(ctx context.Context, req FetchRequest) (Report, error)
}
