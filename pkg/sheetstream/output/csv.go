package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// CSVWriter writes rows as CSV records, optionally transcoded from UTF-8.
type CSVWriter struct {
	cw  *csv.Writer
	enc io.WriteCloser
}

// NewCSV returns a CSV writer. encodingName is a WHATWG encoding label such
// as "windows-1252" or "shift_jis"; empty or "utf-8" writes UTF-8.
// Characters the encoding cannot represent are replaced.
func NewCSV(w io.Writer, encodingName string) (*CSVWriter, error) {
	cwr := &CSVWriter{}
	name := strings.ToLower(strings.TrimSpace(encodingName))
	if name != "" && name != "utf-8" && name != "utf8" {
		e, err := htmlindex.Get(name)
		if err != nil {
			return nil, fmt.Errorf("unknown encoding %q: %w", encodingName, err)
		}
		cwr.enc = transform.NewWriter(w, encoding.ReplaceUnsupported(e.NewEncoder()))
		w = cwr.enc
	}
	cwr.cw = csv.NewWriter(w)
	return cwr, nil
}

// WriteRow writes one record.
func (c *CSVWriter) WriteRow(row models.Row) error {
	return c.cw.Write(row)
}

// Close flushes the CSV buffer and the transcoder.
func (c *CSVWriter) Close() error {
	c.cw.Flush()
	if err := c.cw.Error(); err != nil {
		return err
	}
	if c.enc != nil {
		return c.enc.Close()
	}
	return nil
}
