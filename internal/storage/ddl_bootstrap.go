package storage

import (
	"context"
	"fmt"
	"sync"

	"dataprep/internal/ddl"
)

// DDLBootstrapper is a backend-specific function that maps the logical column
// kinds of a table definition to the backend's SQL types and applies the
// resulting DDL via repo.Exec (typically CREATE TABLE IF NOT EXISTS).
//
// Backends (postgres, mssql, sqlite, mysql) register their implementation for
// a given storage kind at init time.
type DDLBootstrapper func(ctx context.Context, repo Repository, t ddl.TableDef) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given storage
// kind. It is typically called from backend packages' init() functions.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable locates the DDLBootstrapper for the given storage kind and
// invokes it with the table definition. Callers do not need to know which
// backend they are using; they pass the kind and the already-open Repository.
//
// If no DDL bootstrapper has been registered for the storage kind, an error
// is returned.
func EnsureTable(ctx context.Context, kind string, repo Repository, t ddl.TableDef) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", kind)
	}
	return fn(ctx, repo, t)
}
