package sheetstream

import (
	"errors"
	"fmt"
	"os"

	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/models"
	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/parser"
)

// ListSheets returns the sheets of the xlsx file at path in workbook order.
func ListSheets(path string) ([]models.SheetInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if err := detectContainer(f, st.Size()); err != nil {
		return nil, NewReadError("", StageOpen, err)
	}
	pkg, err := parser.OpenPackage(f, st.Size())
	if err != nil {
		return nil, NewReadError("", StageOpen, err)
	}
	return pkg.Sheets(), nil
}
