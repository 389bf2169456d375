package sheetstream

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a valid xlsx package.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrSharedString indicates a shared-string cell whose index is malformed or
// out of range.
var ErrSharedString = parser.ErrSharedString

// ErrLegacyFormat indicates a binary (BIFF) workbook rather than an xlsx package.
var ErrLegacyFormat = errors.New("legacy xls format is not supported")

// ErrEncrypted indicates a password-protected xlsx package.
var ErrEncrypted = errors.New("encrypted workbook is not supported")

// ErrFinished is returned by Read once the sheet has been read to the end.
var ErrFinished = errors.New("sheet already read to completion")

// ErrClosed is returned by Read after Close.
var ErrClosed = errors.New("reader is closed")

// Stages reported by ReadError.
const (
	StageOpen  = "open"
	StageCount = "count"
	StageRows  = "rows"
)

// ReadError represents a fatal error while reading a sheet.
type ReadError struct {
	Sheet string
	Stage string // "open", "count", "rows"
	Err   error
}

func (e *ReadError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("read error (%s): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("read error in sheet %q (%s): %v", e.Sheet, e.Stage, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError creates a new ReadError.
func NewReadError(sheet, stage string, err error) *ReadError {
	return &ReadError{
		Sheet: sheet,
		Stage: stage,
		Err:   err,
	}
}
