// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories and DDL bootstrappers with the
// storage package.
//
// In other words, importing this package makes the following storage kinds
// available at runtime:
//
//   - "postgres" (dataprep/internal/storage/postgres)
//   - "mssql"    (dataprep/internal/storage/mssql)
//   - "mysql"    (dataprep/internal/storage/mysql)
//   - "sqlite"   (dataprep/internal/storage/sqlite)
//
// Typical usage (in cmd/flatten/main.go or a similar wiring layer):
//
//	package main
//
//	import (
//	    "context"
//
//	    _ "dataprep/internal/storage/all" // enable all built-in backends
//
//	    "dataprep/internal/config"
//	    "dataprep/internal/ddl"
//	    "dataprep/internal/storage"
//	    // ... other imports ...
//	)
//
//	func main() {
//	    ctx := context.Background()
//
//	    // Load the job config from disk, flags, etc.
//	    var job config.Job
//	    // ... decode job ...
//
//	    // Open a Repository for the configured backend.
//	    repo, err := storage.New(ctx, storage.Config{
//	        Kind:    job.Storage.Kind,
//	        DSN:     job.Storage.DSN,
//	        Table:   job.Storage.Table,
//	        Columns: columns,
//	    })
//	    if err != nil {
//	        // handle error
//	    }
//	    defer repo.Close()
//
//	    // Optionally create the destination table if requested by the job.
//	    if job.Storage.AutoCreateTable {
//	        def := ddl.TableFor(job.Storage.Table, columns, realColumns)
//	        if err := storage.EnsureTable(ctx, job.Storage.Kind, repo, def); err != nil {
//	            // handle DDL error
//	        }
//	    }
//
//	    // From this point on, the caller can remain fully backend-agnostic.
//	    // Batched loads go through the storage.Repository interface, regardless
//	    // of whether the underlying backend is Postgres, MSSQL, MySQL, or SQLite.
//	}
//
// This pattern keeps backend-specific wiring in a single, small package and
// allows the rest of the application (CLIs, transforms) to depend only on the
// storage abstraction rather than individual backends.
//
// Note: if you want a binary that supports only a subset of backends, you can
// define alternative wiring packages (e.g., storage/sqliteonly) that import
// only the required backends instead of this package.
package all

import (
	_ "dataprep/internal/storage/mssql"
	_ "dataprep/internal/storage/mysql"
	_ "dataprep/internal/storage/postgres"
	_ "dataprep/internal/storage/sqlite"
)
