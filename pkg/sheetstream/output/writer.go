// Package output writes streamed rows in the supported export formats.
package output

import (
	"fmt"
	"io"

	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/models"
)

// Format is an export format.
type Format string

const (
	// FormatJSONL writes one JSON value per row.
	FormatJSONL Format = "jsonl"
	// FormatCSV writes comma-separated rows.
	FormatCSV Format = "csv"
	// FormatXLSX writes a single-sheet workbook.
	FormatXLSX Format = "xlsx"
)

// RowWriter consumes rows one at a time. Close flushes buffered output; it
// does not close the underlying io.Writer.
type RowWriter interface {
	WriteRow(row models.Row) error
	Close() error
}

// Config selects and configures a RowWriter.
type Config struct {
	Format Format
	// Header, when set, makes JSONL rows objects keyed by header name.
	Header *models.Header
	// Encoding is the CSV character encoding (e.g. "windows-1252").
	Encoding string
	// SheetName names the XLSX output sheet.
	SheetName string
}

// NewWriter returns the RowWriter for cfg.Format.
func NewWriter(w io.Writer, cfg Config) (RowWriter, error) {
	switch cfg.Format {
	case FormatJSONL, "":
		return NewJSONLines(w, cfg.Header), nil
	case FormatCSV:
		return NewCSV(w, cfg.Encoding)
	case FormatXLSX:
		return NewXLSX(w, cfg.SheetName)
	default:
		return nil, fmt.Errorf("invalid format: %s (must be jsonl, csv, or xlsx)", cfg.Format)
	}
}
