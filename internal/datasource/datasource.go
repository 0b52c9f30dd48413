// Package datasource defines the minimal contract a pipeline input must
// satisfy. Concrete sources live in subpackages: local files and HTTP
// downloads.
package datasource

import (
	"context"
	"io"
)

// Source opens a stream of raw input bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
