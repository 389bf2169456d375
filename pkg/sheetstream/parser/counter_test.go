package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestCountRows(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{"empty", ``, 0},
		{"cells", `<row r="1"><c r="A1"><v>1</v></c></row><row r="2"><c r="A2"><v>2</v></c></row>`, 2},
		{"self closing rows count", `<row r="1"/><row r="2"></row><row r="3"><c r="B3"/></row>`, 3},
	}

	for _, tt := range tests {
		total, err := CountRows(strings.NewReader(worksheetXML(tt.body)))
		if err != nil {
			t.Fatalf("%s: CountRows failed: %v", tt.name, err)
		}
		if total != tt.expected {
			t.Errorf("%s: CountRows = %d, expected %d", tt.name, total, tt.expected)
		}
	}
}

func TestCountRowsMalformed(t *testing.T) {
	_, err := CountRows(strings.NewReader(`<worksheet><sheetData><row><c>`))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}
}
