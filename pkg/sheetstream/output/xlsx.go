package output

import (
	"io"

	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/models"
	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

// XLSXWriter streams rows into a new workbook and writes it out on Close.
type XLSXWriter struct {
	w   io.Writer
	f   *excelize.File
	sw  *excelize.StreamWriter
	row int
}

// NewXLSX returns a writer producing a single-sheet workbook named
// sheetName (Sheet1 when empty).
func NewXLSX(w io.Writer, sheetName string) (*XLSXWriter, error) {
	f := excelize.NewFile()
	if sheetName != "" && sheetName != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheetName); err != nil {
			f.Close()
			return nil, err
		}
	} else {
		sheetName = defaultSheetName
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &XLSXWriter{w: w, f: f, sw: sw}, nil
}

// WriteRow appends row as the next worksheet row.
func (x *XLSXWriter) WriteRow(row models.Row) error {
	x.row++
	cell, err := excelize.CoordinatesToCellName(1, x.row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	return x.sw.SetRow(cell, values)
}

// Close finishes the sheet and writes the workbook.
func (x *XLSXWriter) Close() error {
	defer x.f.Close()
	if err := x.sw.Flush(); err != nil {
		return err
	}
	return x.f.Write(x.w)
}
