package models

import (
	"strconv"
	"strings"
)

// Header maps column names from a header row to their positions.
// Lookups never fail: a missing column or a short row yields an empty value.
type Header struct {
	names   []string
	columns map[string]int
}

// NewHeader builds a Header from the first row of a sheet. When a name
// appears more than once the rightmost column wins.
func NewHeader(row Row) *Header {
	h := &Header{
		names:   make([]string, len(row)),
		columns: make(map[string]int, len(row)),
	}
	copy(h.names, row)
	for i, name := range row {
		h.columns[name] = i
	}
	return h
}

// Names returns the header names in column order.
func (h *Header) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Index returns the column position of name.
func (h *Header) Index(name string) (int, bool) {
	i, ok := h.columns[name]
	return i, ok
}

// Value returns the cell of row under the named column.
func (h *Header) Value(row Row, name string) string {
	i, ok := h.columns[name]
	if !ok {
		return ""
	}
	return row.Get(i)
}

// Int parses the named column as an integer. ok is false when the column is
// absent, blank or not numeric.
func (h *Header) Int(row Row, name string) (value int, ok bool) {
	v := strings.TrimSpace(h.Value(row, name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Tags splits the named column on spaces, commas and semicolons, dropping
// empty entries and duplicates while keeping first-seen order.
func (h *Header) Tags(row Row, name string) []string {
	fields := strings.FieldsFunc(h.Value(row, name), func(r rune) bool {
		return r == ' ' || r == ',' || r == ';'
	})
	seen := make(map[string]bool, len(fields))
	var tags []string
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			tags = append(tags, f)
		}
	}
	return tags
}

// Record returns the row as a name to value map. Columns beyond the row are
// empty strings; cells beyond the header are dropped.
func (h *Header) Record(row Row) map[string]string {
	rec := make(map[string]string, len(h.names))
	for name, i := range h.columns {
		rec[name] = row.Get(i)
	}
	return rec
}

// Select projects row onto the named columns, in the order given.
func (h *Header) Select(row Row, names []string) Row {
	out := make(Row, len(names))
	for i, name := range names {
		out[i] = h.Value(row, name)
	}
	return out
}
