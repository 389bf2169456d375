package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// maxPrealloc bounds the capacity taken on trust from uniqueCount.
const maxPrealloc = 1 << 16

// SharedStrings is the package's interned string table. It is loaded once
// and read-only afterwards.
type SharedStrings struct {
	items []string
}

// NewSharedStrings returns a table holding items.
func NewSharedStrings(items []string) *SharedStrings {
	return &SharedStrings{items: items}
}

// Len returns the number of entries.
func (s *SharedStrings) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Lookup returns the string at index.
func (s *SharedStrings) Lookup(index int) (string, error) {
	if index < 0 || index >= s.Len() {
		return "", fmt.Errorf("%w: index %d, table has %d entries", ErrSharedString, index, s.Len())
	}
	return s.items[index], nil
}

// LoadSharedStrings reads a sharedStrings part in full. Each <si> item is the
// concatenation of its <t> texts, rich text runs included and phonetic runs
// (<rPh>) excluded.
func LoadSharedStrings(r io.Reader) (*SharedStrings, error) {
	sst := &SharedStrings{}
	decoder := xml.NewDecoder(r)

	var (
		inItem   bool
		inText   bool
		phonetic int
		buf      []byte
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: shared strings: %v", ErrInvalidFormat, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sst":
				if n := attrInt(t, "uniqueCount"); n > 0 {
					sst.items = make([]string, 0, min(n, maxPrealloc))
				}
			case "si":
				inItem = true
				buf = buf[:0]
			case "rPh":
				phonetic++
			case "t":
				inText = inItem && phonetic == 0
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "si":
				sst.items = append(sst.items, string(buf))
				inItem = false
			case "rPh":
				phonetic--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				buf = append(buf, t...)
			}
		}
	}

	return sst, nil
}

func attrInt(se xml.StartElement, name string) int {
	for _, attr := range se.Attr {
		if attr.Name.Local == name {
			if n, err := strconv.Atoi(attr.Value); err == nil {
				return n
			}
		}
	}
	return 0
}
