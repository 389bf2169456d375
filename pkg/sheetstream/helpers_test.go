package sheetstream

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// rawWorkbook builds a one-sheet package from literal sheetData markup so
// tests control exactly which cells and shared strings are present.
func rawWorkbook(t *testing.T, sheetName, sheetData string, sst []string) *bytes.Reader {
	t.Helper()

	rels := `<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>`
	files := map[string]string{
		"_rels/.rels": `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/></Relationships>`,
		"xl/workbook.xml": `<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
			`<sheets><sheet name="` + sheetName + `" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/worksheets/sheet1.xml": `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>` +
			sheetData + `</sheetData></worksheet>`,
	}
	if sst != nil {
		rels += `<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>`
		var b strings.Builder
		b.WriteString(`<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
		for _, s := range sst {
			fmt.Fprintf(&b, `<si><t>%s</t></si>`, s)
		}
		b.WriteString(`</sst>`)
		files["xl/sharedStrings.xml"] = b.String()
	}
	files["xl/_rels/workbook.xml.rels"] = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels + `</Relationships>`

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

// streamedWorkbook writes n rows of ["<i>", "row"] to Sheet1 with the
// excelize stream writer and returns the file path.
func streamedWorkbook(t *testing.T, n int) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter("Sheet1")
	if err != nil {
		t.Fatalf("Failed to create stream writer: %v", err)
	}
	for i := 1; i <= n; i++ {
		cell, _ := excelize.CoordinatesToCellName(1, i)
		if err := sw.SetRow(cell, []interface{}{i, "row"}); err != nil {
			t.Fatalf("Failed to write row %d: %v", i, err)
		}
	}
	if err := sw.Flush(); err != nil {
		t.Fatalf("Failed to flush stream writer: %v", err)
	}

	path := filepath.Join(t.TempDir(), "stream.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

// readAll drains r batch by batch.
func readAll(t *testing.T, r *Reader) [][]string {
	t.Helper()
	var rows [][]string
	for !r.FinishedReading() {
		batch, err := r.Read()
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		for _, row := range batch {
			rows = append(rows, row)
		}
	}
	return rows
}
