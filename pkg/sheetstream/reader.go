package sheetstream

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/models"
	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/parser"
)

// Reader streams one worksheet in batches. A Reader owns its package source
// and worksheet stream until Close; it is not safe for concurrent use.
type Reader struct {
	opts Options
	log  *slog.Logger

	sheet   models.SheetInfo
	strings *parser.SharedStrings
	stream  io.ReadCloser
	events  *parser.EventReader
	machine parser.Machine
	cursor  Cursor

	cleanup []func() error
	closed  bool
}

// Open prepares a Reader over the xlsx package in r. It locates the sheet
// (empty name selects the first sheet), loads the shared string table and
// counts the sheet's rows before returning. The caller keeps ownership of r.
func Open(r io.ReaderAt, size int64, sheetName string, opts Options) (*Reader, error) {
	return open(r, size, sheetName, opts, nil)
}

// OpenFile opens the xlsx file at path. The file handle is released by Close.
func OpenFile(path, sheetName string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return open(f, st.Size(), sheetName, opts, []func() error{f.Close})
}

// OpenStream reads the package from a plain byte stream. Input that cannot
// be read at random offsets is spooled to a temporary file, removed on Close.
// The caller keeps ownership of r.
func OpenStream(r io.Reader, sheetName string, opts Options) (*Reader, error) {
	if sized, ok := r.(interface {
		io.ReaderAt
		Size() int64
	}); ok {
		return open(sized, sized.Size(), sheetName, opts, nil)
	}
	if f, ok := r.(*os.File); ok {
		if st, err := f.Stat(); err == nil && st.Mode().IsRegular() {
			return open(f, st.Size(), sheetName, opts, nil)
		}
	}

	tmp, err := os.CreateTemp(opts.TempDir, "sheetstream-*.xlsx")
	if err != nil {
		return nil, err
	}
	cleanup := []func() error{
		func() error { return os.Remove(tmp.Name()) },
		tmp.Close,
	}
	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("spool input: %w", err)
	}
	return open(tmp, size, sheetName, opts, cleanup)
}

func open(r io.ReaderAt, size int64, sheetName string, opts Options, cleanup []func() error) (*Reader, error) {
	rd := &Reader{
		opts:    opts,
		log:     opts.logger(),
		cursor:  Cursor{BatchSize: opts.batchSize()},
		cleanup: cleanup,
	}
	if err := rd.prepare(r, size, sheetName); err != nil {
		rd.Close()
		return nil, err
	}
	return rd, nil
}

func (rd *Reader) prepare(r io.ReaderAt, size int64, sheetName string) error {
	if err := detectContainer(r, size); err != nil {
		return NewReadError(sheetName, StageOpen, err)
	}

	pkg, err := parser.OpenPackage(r, size)
	if err != nil {
		return NewReadError(sheetName, StageOpen, err)
	}

	sheet, err := pkg.Locate(sheetName)
	if err != nil {
		return NewReadError(sheetName, StageOpen, err)
	}
	rd.sheet = sheet.Info
	rd.strings = pkg.SharedStrings()
	rd.log.Debug("sheet located",
		slog.String("sheet", sheet.Info.Name),
		slog.String("part", sheet.Info.Path),
		slog.Int("shared_strings", rd.strings.Len()))

	total, err := parser.CountSheetRows(sheet)
	if err != nil {
		return NewReadError(sheet.Info.Name, StageCount, err)
	}
	rd.cursor.TotalRows = total
	rd.log.Debug("rows counted",
		slog.String("sheet", sheet.Info.Name),
		slog.Int("total_rows", total))

	stream, err := sheet.Open()
	if err != nil {
		return NewReadError(sheet.Info.Name, StageRows, err)
	}
	rd.stream = stream
	rd.events = parser.NewEventReader(stream)
	return nil
}

// Read returns the next batch of rows. It consumes at most BatchSize row
// ends; rows without any cell are counted but not returned. When the cap is
// hit HasMoreData is true and the next call resumes at the following row.
// Once the sheet is exhausted FinishedReading is true and further calls
// return ErrFinished. A fatal error closes the Reader and no rows are
// returned with it.
func (rd *Reader) Read() ([]models.Row, error) {
	if rd.closed {
		return nil, ErrClosed
	}
	if rd.cursor.FinishedReading {
		return nil, ErrFinished
	}

	batch := make([]models.Row, 0, rd.batchCapacity())
	consumed := 0
	for !rd.cursor.full(consumed) {
		ev, err := rd.events.Next()
		if err == io.EOF {
			rd.cursor.finish()
			rd.log.Debug("sheet finished",
				slog.String("sheet", rd.sheet.Name),
				slog.Int("rows_read", rd.cursor.RowsRead))
			return batch, nil
		}
		if err != nil {
			return nil, rd.fail(err)
		}

		next, step, err := rd.machine.Next(ev, rd.strings)
		if err != nil {
			return nil, rd.fail(err)
		}
		rd.machine = next
		if !step.RowClosed {
			continue
		}
		if step.Row != nil {
			batch = append(batch, step.Row)
		}
		consumed++
		rd.cursor.advance()
	}

	rd.cursor.suspend()
	rd.log.Debug("batch suspended",
		slog.String("sheet", rd.sheet.Name),
		slog.Int("rows_read", rd.cursor.RowsRead),
		slog.Int("total_rows", rd.cursor.TotalRows))
	return batch, nil
}

// Each calls fn for every remaining row, reading batch by batch. It stops at
// the first error from fn or from Read.
func (rd *Reader) Each(fn func(models.Row) error) error {
	for !rd.cursor.FinishedReading {
		rows, err := rd.Read()
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := fn(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sheet returns the sheet being read.
func (rd *Reader) Sheet() models.SheetInfo { return rd.sheet }

// Cursor returns a snapshot of the pagination state.
func (rd *Reader) Cursor() Cursor { return rd.cursor }

// RowsRead returns the rows consumed so far.
func (rd *Reader) RowsRead() int { return rd.cursor.RowsRead }

// TotalRows returns the row count established when the Reader was opened.
func (rd *Reader) TotalRows() int { return rd.cursor.TotalRows }

// HasMoreData reports whether the last Read stopped at the batch cap.
func (rd *Reader) HasMoreData() bool { return rd.cursor.HasMoreData }

// FinishedReading reports whether the sheet has been read to the end.
func (rd *Reader) FinishedReading() bool { return rd.cursor.FinishedReading }

// Close releases the worksheet stream and the package source. It is safe
// to call more than once.
func (rd *Reader) Close() error {
	if rd.closed {
		return nil
	}
	rd.closed = true

	var errs []error
	if rd.stream != nil {
		errs = append(errs, rd.stream.Close())
		rd.stream = nil
	}
	for i := len(rd.cleanup) - 1; i >= 0; i-- {
		errs = append(errs, rd.cleanup[i]())
	}
	rd.cleanup = nil
	rd.events = nil
	rd.strings = nil
	return errors.Join(errs...)
}

func (rd *Reader) fail(err error) error {
	wrapped := NewReadError(rd.sheet.Name, StageRows, err)
	rd.log.Debug("read failed",
		slog.String("sheet", rd.sheet.Name),
		slog.Int("rows_read", rd.cursor.RowsRead),
		slog.Any("error", err))
	rd.Close()
	return wrapped
}

func (rd *Reader) batchCapacity() int {
	remaining := rd.cursor.TotalRows - rd.cursor.RowsRead
	return max(min(rd.cursor.BatchSize, remaining), 0)
}
