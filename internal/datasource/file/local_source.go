// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct {
	path string
	hint bool
}

// NewLocal returns a Local data source bound to the provided path. The value
// is safe for concurrent use as long as the path is valid for concurrent
// reads.
func NewLocal(path string) *Local { return &Local{path: path} }

// WithSequentialHint marks the file for front-to-back reading. On platforms
// that support it, Open advises the kernel accordingly; elsewhere it is a
// no-op. Returns l for chaining.
func (l *Local) WithSequentialHint() *Local {
	l.hint = true
	return l
}

// Open opens the configured path for reading and returns an io.ReadCloser.
//
// Behavior:
//   - If the context is already canceled at the time of the call, Open
//     returns the context error without touching the filesystem.
//   - Filesystem errors are wrapped with the path for context while keeping
//     errors.Is/As usable (e.g., errors.Is(err, os.ErrNotExist)).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	if l.hint {
		adviseSequential(f)
	}
	return f, nil
}

// Path returns the path the source is bound to.
func (l *Local) Path() string { return l.path }

// Exists reports whether the path currently names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
