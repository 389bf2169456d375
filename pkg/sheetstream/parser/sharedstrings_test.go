package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadSharedStrings(t *testing.T) {
	xml := `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="4" uniqueCount="4">
<si><t>Req ID</t></si>
<si><r><rPr><b/></rPr><t>Bold</t></r><r><t xml:space="preserve"> and plain</t></r></si>
<si><t>東京</t><rPh sb="0" eb="2"><t>トウキョウ</t></rPh></si>
<si><t/></si>
</sst>`

	sst, err := LoadSharedStrings(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("LoadSharedStrings failed: %v", err)
	}

	expected := []string{"Req ID", "Bold and plain", "東京", ""}
	if sst.Len() != len(expected) {
		t.Fatalf("Expected %d strings, got %d", len(expected), sst.Len())
	}
	for i, want := range expected {
		got, err := sst.Lookup(i)
		if err != nil {
			t.Fatalf("Lookup(%d) failed: %v", i, err)
		}
		if got != want {
			t.Errorf("Lookup(%d) = %q, expected %q", i, got, want)
		}
	}
}

func TestSharedStringsLookupOutOfRange(t *testing.T) {
	sst := NewSharedStrings([]string{"a", "b"})

	for _, index := range []int{-1, 2, 100} {
		if _, err := sst.Lookup(index); !errors.Is(err, ErrSharedString) {
			t.Errorf("Lookup(%d) error = %v, expected ErrSharedString", index, err)
		}
	}

	var empty *SharedStrings
	if _, err := empty.Lookup(0); !errors.Is(err, ErrSharedString) {
		t.Errorf("nil table Lookup error = %v, expected ErrSharedString", err)
	}
}

func TestLoadSharedStringsMalformed(t *testing.T) {
	_, err := LoadSharedStrings(strings.NewReader(`<sst><si><t>open`))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}
}
