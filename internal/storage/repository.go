package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository is the storage-agnostic contract every backend implements.
// CopyFrom bulk-inserts rows aligned to the given column order and returns
// how many rows the backend reports as inserted. Exec runs raw SQL (used for
// DDL). Close releases the underlying pool or connection.
type Repository interface {
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	Exec(ctx context.Context, sql string) error
	Close()
}

// Config carries everything a backend factory needs to open a Repository.
// Kind selects the backend ("sqlite", "postgres", "mssql", "mysql"); the
// remaining fields are passed through to it.
type Config struct {
	Kind    string
	DSN     string
	Table   string
	Columns []string
}

// Factory constructs a Repository for one storage kind. Backends register
// their factory in init(); see the all package for the side-effect imports.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	factoryMu sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for the given storage kind.
// It is typically called from backend packages' init() functions; tests may
// re-register a kind to swap in fakes.
func Register(kind string, fn Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind using the registered factory.
func New(ctx context.Context, cfg Config) (Repository, error) {
	factoryMu.RLock()
	fn, ok := factories[cfg.Kind]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return fn(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered storage kinds.
// Mutating the returned slice does not affect the registry.
func ListKinds() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
