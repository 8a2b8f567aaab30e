package punch

import (
	"context"
	"time"
)

// Source fetches punches from a biometric terminal (or a gateway in front of
// one). The core treats it as opaque blocking IO: one round-trip per
// invocation, failures wrapped in ErrDeviceFetch.
type Source interface {
	// FetchRange returns all punches whose date falls within [start, end],
	// both inclusive.
	FetchRange(ctx context.Context, start, end time.Time) ([]Event, error)
}
