package directory

import "context"

// Loader reads the employee registry from a backing source. Implementations
// are called once at process start; the resulting Directory is immutable.
type Loader interface {
	Load(ctx context.Context) (Directory, error)
}
