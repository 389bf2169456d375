package output

import (
	"fmt"

	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/models"
	"github.com/xuri/excelize/v2"
)

// Summary accumulates the data extent of a row stream without keeping the
// rows: the bounding box of non-empty cells and how densely it is filled.
type Summary struct {
	// Rows is the number of rows seen.
	Rows int
	// Width is the widest row seen.
	Width int
	// NonEmpty counts non-empty cells.
	NonEmpty int

	minRow, maxRow int
	minCol, maxCol int
}

// NewSummary returns an empty Summary.
func NewSummary() *Summary {
	return &Summary{minRow: -1, maxRow: -1, minCol: -1, maxCol: -1}
}

// Add records one row.
func (s *Summary) Add(row models.Row) {
	rowIdx := s.Rows
	s.Rows++
	s.Width = max(s.Width, len(row))

	for colIdx, cell := range row {
		if cell == "" {
			continue
		}
		s.NonEmpty++
		if s.minRow < 0 {
			s.minRow = rowIdx
		}
		s.maxRow = rowIdx
		if s.minCol < 0 || colIdx < s.minCol {
			s.minCol = colIdx
		}
		if s.maxCol < 0 || colIdx > s.maxCol {
			s.maxCol = colIdx
		}
	}
}

// Density is the share of non-empty cells inside the bounding box.
func (s *Summary) Density() float64 {
	if s.NonEmpty == 0 {
		return 0
	}
	totalCells := (s.maxRow - s.minRow + 1) * (s.maxCol - s.minCol + 1)
	return float64(s.NonEmpty) / float64(totalCells)
}

// Range returns the bounding box in A1 notation relative to the emitted
// rows (e.g. "A1:D10"), or "" when every cell was empty.
func (s *Summary) Range() string {
	if s.NonEmpty == 0 {
		return ""
	}
	startCell, _ := excelize.CoordinatesToCellName(s.minCol+1, s.minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(s.maxCol+1, s.maxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}
