// Package sheetstream reads xlsx worksheets as bounded batches of text rows
// over a single forward-only cursor.
package sheetstream

import "log/slog"

// MaxRowsOnOneRead is the default cap on rows consumed by one Read call.
const MaxRowsOnOneRead = 10000

// Options configures a Reader.
type Options struct {
	// BatchSize caps the rows consumed per Read. Zero or negative means
	// MaxRowsOnOneRead.
	BatchSize int
	// Logger receives debug events. If nil, logging is discarded.
	Logger *slog.Logger
	// TempDir is where OpenStream spools non-seekable input. Empty uses
	// os.TempDir.
	TempDir string
}

// DefaultOptions returns default reader options.
func DefaultOptions() Options {
	return Options{
		BatchSize: MaxRowsOnOneRead,
	}
}

func (o Options) batchSize() int {
	if o.BatchSize <= 0 {
		return MaxRowsOnOneRead
	}
	return o.BatchSize
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
