package cli

import (
	"context"
	"fmt"

	"dataprep/internal/config"
	"dataprep/internal/ddl"
	"dataprep/internal/ident"
	"dataprep/internal/storage"
	"dataprep/internal/table"
)

// defaultBatchSize applies when the job does not set storage.batch_size.
const defaultBatchSize = 10000

// Sink streams produced blocks into a database table through the configured
// storage backend. OpenSink connects and starts the batched loader, creating
// the table first when asked; Send hands blocks over; Close flushes the tail
// batch and reports how many rows the backend acknowledged.
type Sink struct {
	repo   storage.Repository
	ch     chan *table.Block
	done   chan struct{}
	loaded int64
	err    error
}

// OpenSink connects to the backend named by st and starts the loader.
// header is the output table's column order; the names are normalized into
// database identifiers. real marks float columns so an auto-created table
// types them numerically; nil means all-text.
func OpenSink(ctx context.Context, st config.Storage, header []string, real []bool) (*Sink, error) {
	cols := ident.Columns(header)
	repo, err := storage.New(ctx, storage.Config{
		Kind:    st.Kind,
		DSN:     st.DSN,
		Table:   st.Table,
		Columns: cols,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if st.AutoCreateTable {
		if err := storage.EnsureTable(ctx, st.Kind, repo, ddl.TableFor(st.Table, cols, real)); err != nil {
			repo.Close()
			return nil, fmt.Errorf("apply DDL: %w", err)
		}
	}

	batch := st.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	s := &Sink{repo: repo, ch: make(chan *table.Block, 1), done: make(chan struct{})}
	go func() {
		defer close(s.done)
		s.loaded, s.err = storage.LoadBlocks(ctx, cols, s.ch, batch, repo.CopyFrom)
	}()
	return s, nil
}

// Send hands b to the loader, which returns its rows to the pool after the
// insert. When the loader has already stopped on an error the block is
// dropped here so the producer can finish; Close reports that error.
func (s *Sink) Send(b *table.Block) {
	select {
	case <-s.done:
		table.FreeRows(b)
		return
	default:
	}
	select {
	case s.ch <- b:
	case <-s.done:
		table.FreeRows(b)
	}
}

// Close flushes the remaining batch, waits for the loader, closes the
// connection and returns the loaded row count. The sink must not be used
// afterwards.
func (s *Sink) Close() (int64, error) {
	close(s.ch)
	<-s.done
	s.repo.Close()
	return s.loaded, s.err
}
