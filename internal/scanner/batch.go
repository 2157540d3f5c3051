package scanner

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/can-i-eat-this/internal/model"
	"github.com/Veraticus/can-i-eat-this/internal/source"
)

// DefaultConcurrency bounds parallel scans when the caller does not
// pick a limit. Recognition is CPU-heavy, so the default stays modest.
const DefaultConcurrency = 4

// BatchOptions configure ScanBatch.
type BatchOptions struct {
	// Concurrency caps simultaneous scans; zero means
	// DefaultConcurrency.
	Concurrency int
	// OnResult, when set, is called as each scan finishes. It runs on
	// the scanning goroutine and must be safe for concurrent use.
	OnResult func(record *model.ScanRecord, index int)
}

// ScanBatch scans many image files, returning one record per path in
// input order. A failed scan is recorded on its ScanRecord and the
// batch keeps going; only context cancellation aborts the whole run.
func (s *Scanner) ScanBatch(ctx context.Context, paths []string, opts BatchOptions) ([]*model.ScanRecord, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	slog.Info("starting batch scan", "images", len(paths), "concurrency", concurrency)
	start := time.Now()

	records := make([]*model.ScanRecord, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			record, err := s.Scan(ctx, source.NewFile(path))
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				slog.Warn("scan failed", "image", path, "error", err)
				record = &model.ScanRecord{
					ImagePath: path,
					ScannedAt: time.Now(),
					Err:       err.Error(),
				}
			}

			// Each goroutine owns a distinct index, so no lock is
			// needed around the slice.
			records[i] = record
			if opts.OnResult != nil {
				opts.OnResult(record, i)
			}
			return nil
		})
	}

	err := g.Wait()
	slog.Info("batch scan complete",
		"images", len(paths),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return records, err
}
