package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/models"
)

// State is the position of the row machine within the sheetData markup.
type State int

const (
	// StateIdle is outside any row.
	StateIdle State = iota
	// StateInRow has a row open and is accumulating cells.
	StateInRow
	// StateInCell has a cell open and is waiting for its value.
	StateInCell
	// StateHasValue holds the cell value until the cell closes.
	StateHasValue
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInRow:
		return "InRow"
	case StateInCell:
		return "InCell"
	case StateHasValue:
		return "HasValue"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

const (
	cellTypeSharedString = "s"
	// carriageReturnMarker is how OOXML escapes a literal CR inside text.
	carriageReturnMarker = "_x000D_"
	// maxColumns is the widest row a worksheet can hold (XFD).
	maxColumns = 16384
)

// Lookup resolves shared string indices.
type Lookup interface {
	Lookup(index int) (string, error)
}

// Machine rebuilds rows from worksheet events. It is a value: Next returns
// the successor machine and leaves the receiver untouched apart from the
// row buffer it hands over.
type Machine struct {
	State State

	row      []string
	cellType string
	value    string
	prevRef  string
	hasPrev  bool
}

// Step reports what a single transition produced.
type Step struct {
	// Fill is the number of empty cells inserted for omitted columns.
	Fill int
	// RowClosed is set on every row end, emitted or not.
	RowClosed bool
	// Row is the finished row; nil when the closed row had no cells.
	Row models.Row
}

// Next applies ev to the machine. Events that make no sense in the current
// state (a cell outside a row, a value outside a cell) are ignored.
func (m Machine) Next(ev Event, sst Lookup) (Machine, Step, error) {
	var step Step

	switch ev.Kind {
	case EventRowStart:
		m.State = StateInRow
		m.row = nil
		m.prevRef, m.hasPrev = "", false

	case EventCellStart:
		if m.State == StateIdle {
			return m, step, nil
		}
		m.State = StateInCell
		m.cellType = ev.Type
		m.value = ""
		if ev.Ref == "" {
			m.prevRef, m.hasPrev = "", false
			break
		}
		if m.hasPrev {
			if gap := ColumnGap(m.prevRef, ev.Ref); gap > 1 {
				step.Fill = int(min(gap-1, maxColumns))
				for i := 0; i < step.Fill; i++ {
					m.row = append(m.row, "")
				}
			}
		}
		m.prevRef, m.hasPrev = ev.Ref, true

	case EventValue:
		if m.State != StateInCell && m.State != StateHasValue {
			return m, step, nil
		}
		v, err := m.resolve(ev.Text, sst)
		if err != nil {
			return m, step, err
		}
		m.value = v
		m.State = StateHasValue

	case EventCellEnd:
		if m.State != StateInCell && m.State != StateHasValue {
			return m, step, nil
		}
		m.row = append(m.row, m.value)
		m.value = ""
		m.State = StateInRow

	case EventRowEnd:
		step.RowClosed = true
		if len(m.row) > 0 {
			step.Row = models.Row(m.row)
		}
		m.row = nil
		m.prevRef, m.hasPrev = "", false
		m.State = StateIdle
	}

	return m, step, nil
}

func (m Machine) resolve(text string, sst Lookup) (string, error) {
	if m.cellType != cellTypeSharedString {
		return strings.ReplaceAll(text, carriageReturnMarker, ""), nil
	}
	if text == "" {
		return "", nil
	}
	index, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return "", fmt.Errorf("%w: %q is not an index", ErrSharedString, text)
	}
	if sst == nil {
		return "", fmt.Errorf("%w: package has no shared string table", ErrSharedString)
	}
	s, err := sst.Lookup(index)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(s, carriageReturnMarker, ""), nil
}
