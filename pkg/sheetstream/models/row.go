// Package models defines data structures for streamed sheet reading.
package models

// Row is one logical sheet row: a text value per column, left to right,
// with skipped columns filled by empty strings.
type Row []string

// Get returns the value at column index i, or "" when the row is shorter.
func (r Row) Get(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}
