package punch

import "context"

// Normalizer turns a raw punch-log export into a canonical event stream.
type Normalizer interface {
	// Normalize parses raw bytes of unknown encoding, delimiter and column
	// naming. Row-level problems (bad timestamps, blank cells) are absorbed
	// and counted; structural problems return *ParseError or
	// *ColumnDetectionError and abort the invocation.
	Normalize(ctx context.Context, raw []byte, opts NormalizeOptions) (NormalizeResult, error)
}
