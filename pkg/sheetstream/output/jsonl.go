package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/models"
)

// JSONLinesWriter writes each row as a JSON array, or as an object in header
// column order when a header is set.
type JSONLinesWriter struct {
	w      *bufio.Writer
	header *models.Header
	names  []string
}

// NewJSONLines returns a JSON-lines writer. header may be nil.
func NewJSONLines(w io.Writer, header *models.Header) *JSONLinesWriter {
	jw := &JSONLinesWriter{w: bufio.NewWriter(w), header: header}
	if header != nil {
		jw.names = header.Names()
	}
	return jw
}

// WriteRow writes one line.
func (jw *JSONLinesWriter) WriteRow(row models.Row) error {
	if jw.header == nil {
		if row == nil {
			row = models.Row{}
		}
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		jw.w.Write(data)
		return jw.w.WriteByte('\n')
	}

	// Objects are written by hand to keep header order.
	jw.w.WriteByte('{')
	for i, name := range jw.names {
		if i > 0 {
			jw.w.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		val, err := json.Marshal(row.Get(i))
		if err != nil {
			return err
		}
		jw.w.Write(key)
		jw.w.WriteByte(':')
		jw.w.Write(val)
	}
	jw.w.WriteByte('}')
	return jw.w.WriteByte('\n')
}

// Close flushes buffered lines.
func (jw *JSONLinesWriter) Close() error {
	return jw.w.Flush()
}
