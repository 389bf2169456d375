package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// EventKind identifies a structural worksheet event.
type EventKind int

const (
	EventRowStart EventKind = iota
	EventRowEnd
	EventCellStart
	EventValue
	EventCellEnd
)

func (k EventKind) String() string {
	switch k {
	case EventRowStart:
		return "RowStart"
	case EventRowEnd:
		return "RowEnd"
	case EventCellStart:
		return "CellStart"
	case EventValue:
		return "Value"
	case EventCellEnd:
		return "CellEnd"
	}
	return "EventKind(" + strconv.Itoa(int(k)) + ")"
}

// Event is one structural event of the sheetData markup.
type Event struct {
	Kind EventKind
	// Type is the cell's t attribute (CellStart only).
	Type string
	// Ref is the cell's r attribute (CellStart only).
	Ref string
	// Text is the raw value text (Value only).
	Text string
}

// EventReader turns a worksheet XML stream into structural events. Value
// events carry the full text of a <v> element or of an inline string <is>.
type EventReader struct {
	decoder *xml.Decoder

	inCell   bool
	inValue  bool
	inInline bool
	inText   bool
	phonetic int
	buf      []byte
}

// NewEventReader returns an EventReader over worksheet XML.
func NewEventReader(r io.Reader) *EventReader {
	return &EventReader{decoder: xml.NewDecoder(r)}
}

// Next returns the next structural event, or io.EOF once the stream is
// exhausted.
func (er *EventReader) Next() (Event, error) {
	for {
		token, err := er.decoder.Token()
		if err == io.EOF {
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, fmt.Errorf("%w: worksheet: %v", ErrInvalidFormat, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				return Event{Kind: EventRowStart}, nil
			case "c":
				er.inCell = true
				ev := Event{Kind: EventCellStart}
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "t":
						ev.Type = attr.Value
					case "r":
						ev.Ref = attr.Value
					}
				}
				return ev, nil
			case "v":
				if er.inCell {
					er.inValue = true
					er.buf = er.buf[:0]
				}
			case "is":
				if er.inCell {
					er.inInline = true
					er.buf = er.buf[:0]
				}
			case "rPh":
				er.phonetic++
			case "t":
				er.inText = er.inInline && er.phonetic == 0
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "row":
				return Event{Kind: EventRowEnd}, nil
			case "c":
				er.inCell = false
				return Event{Kind: EventCellEnd}, nil
			case "v":
				if er.inValue {
					er.inValue = false
					return Event{Kind: EventValue, Text: string(er.buf)}, nil
				}
			case "is":
				if er.inInline {
					er.inInline = false
					return Event{Kind: EventValue, Text: string(er.buf)}, nil
				}
			case "rPh":
				er.phonetic--
			case "t":
				er.inText = false
			}
		case xml.CharData:
			if er.inValue || er.inText {
				er.buf = append(er.buf, t...)
			}
		}
	}
}
