package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

const (
	rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/></Relationships>`
	nsMain = `xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	relWS  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	relSST = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"
)

// buildZip writes files into an in-memory zip archive.
func buildZip(t *testing.T, files map[string]string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

// workbookFiles returns a minimal package with one worksheet per sheet
// body, named in order, plus a shared string table when sst is non-nil.
func workbookFiles(names []string, bodies []string, sst []string) map[string]string {
	var sheets, rels strings.Builder
	files := map[string]string{"_rels/.rels": rootRelsXML}
	for i, name := range names {
		fmt.Fprintf(&sheets, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, name, i+1, i+1)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s" Target="worksheets/sheet%d.xml"/>`, i+1, relWS, i+1)
		files[fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)] = worksheetXML(bodies[i])
	}
	if sst != nil {
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s" Target="sharedStrings.xml"/>`, len(names)+1, relSST)
		files["xl/sharedStrings.xml"] = sharedStringsXML(sst)
	}
	files["xl/workbook.xml"] = `<workbook ` + nsMain + `><sheets>` + sheets.String() + `</sheets></workbook>`
	files["xl/_rels/workbook.xml.rels"] = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels.String() + `</Relationships>`
	return files
}

func worksheetXML(sheetData string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><worksheet ` + nsMain + `><sheetData>` + sheetData + `</sheetData></worksheet>`
}

func sharedStringsXML(items []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`, len(items), len(items))
	for _, s := range items {
		fmt.Fprintf(&b, `<si><t>%s</t></si>`, s)
	}
	b.WriteString(`</sst>`)
	return b.String()
}

// collectEvents drains an EventReader.
func collectEvents(t *testing.T, xml string) []Event {
	t.Helper()
	er := NewEventReader(strings.NewReader(xml))
	var events []Event
	for {
		ev, err := er.Next()
		if err != nil {
			break
		}
		events = append(events, ev)
	}
	return events
}

type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return bytes.NewReader(b).ReadAt(p, off)
}
