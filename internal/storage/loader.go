// Package storage contains storage-agnostic contracts and utilities.
// This file implements a generic, batched loader that drains row blocks from
// a channel and invokes a provided bulk-insert function (CopyFn) per batch.
//
// Backends (Postgres, MySQL, MSSQL, SQLite) implement CopyFn using their
// most efficient primitives (e.g., Postgres COPY, MySQL multi-row INSERT).
//
// Logging: on every successful flush, a concise progress line is emitted with
// running totals and instantaneous rows/sec since the previous flush.
package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"dataprep/internal/table"
)

// CopyFn abstracts a backend's bulk insert capability. Implementations should
// insert the provided rows (aligned to 'columns' order) and return the number
// of rows reported as inserted. The function should be safe for repeated calls
// and cancel promptly when ctx is done.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBlocks drains row blocks from 'in', slices their rows into batches of
// size 'batchSize', and calls 'copyFn' for each non-empty batch. Each block's
// rows go back to the pool once the block has been handed to the backend.
// It returns the total number of rows reported by copyFn and the first error
// encountered.
//
// Cancellation: returns (total, ctx.Err()) when canceled. Progress is logged
// on each successful flush.
func LoadBlocks(
	ctx context.Context,
	columns []string,
	in <-chan *table.Block,
	batchSize int,
	copyFn CopyFn,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}

	var (
		total       int64
		batches     int64
		start       = time.Now()
		lastFlushTS = start
		lastTotal   int64
	)

	flush := func(rows [][]any) error {
		if len(rows) == 0 {
			return nil
		}
		n, err := copyFn(ctx, columns, rows)
		total += n

		if err != nil {
			log.Printf("loader: bulk insert failed after=%d total=%d err=%v", n, total, err)

			return err
		}

		// Progress log per successful batch.
		batches++
		now := time.Now()
		sinceLast := now.Sub(lastFlushTS)
		insertedSinceLast := total - lastTotal
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(insertedSinceLast) / sinceLast.Seconds()
		}
		log.Printf(
			"batch #%d: rps=%.0f inserted=%d total_inserted=%d elapsed=%s since_last=%s",
			batches,
			rps,
			n,
			total,
			now.Sub(start).Truncate(time.Millisecond),
			sinceLast.Truncate(time.Millisecond),
		)
		lastFlushTS = now
		lastTotal = total

		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()

		case b, ok := <-in:
			if !ok {
				log.Printf("loader: input closed, batches=%d total_inserted=%d", batches, total)

				return total, nil
			}

			var flushErr error
			for lo := 0; lo < len(b.Rows) && flushErr == nil; lo += batchSize {
				if flushErr = ctx.Err(); flushErr != nil {
					break
				}
				hi := lo + batchSize
				if hi > len(b.Rows) {
					hi = len(b.Rows)
				}
				flushErr = flush(b.Rows[lo:hi])
			}
			// Rows go back to the pool whether or not the flush succeeded;
			// after an error the run aborts and nothing reads them again.
			table.FreeRows(b)
			if flushErr != nil {
				return total, flushErr
			}
		}
	}
}
