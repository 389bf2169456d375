package parser

import (
	"encoding/xml"
	"fmt"
	"io"
)

// CountRows counts the row-end events of a worksheet stream. It resolves no
// values; it only walks structural boundaries.
func CountRows(r io.Reader) (int, error) {
	decoder := xml.NewDecoder(r)
	total := 0
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return 0, fmt.Errorf("%w: worksheet: %v", ErrInvalidFormat, err)
		}
		if ee, ok := token.(xml.EndElement); ok && ee.Name.Local == "row" {
			total++
		}
	}
}

// CountSheetRows opens its own stream over the sheet and counts its rows.
func CountSheetRows(s *Sheet) (int, error) {
	rc, err := s.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	return CountRows(rc)
}
