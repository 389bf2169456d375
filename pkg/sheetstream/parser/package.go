// Package parser provides streaming SpreadsheetML parsing utilities.
package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ukaji3/sheetstream-go/pkg/sheetstream/models"
)

// Relationship types used to navigate the package.
const (
	relOfficeDocument = "/officeDocument"
	relWorksheet      = "/worksheet"
	relSharedStrings  = "/sharedStrings"
)

const defaultWorkbookPath = "xl/workbook.xml"

var (
	// ErrInvalidFormat indicates the input is not a readable xlsx package.
	ErrInvalidFormat = errors.New("invalid xlsx format")
	// ErrSheetNotFound indicates the requested sheet is absent from the workbook.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrSharedString indicates a shared-string cell whose index cannot be resolved.
	ErrSharedString = errors.New("unresolvable shared string index")
)

// Package is an opened xlsx package. It holds the sheet directory and the
// shared string table; worksheet parts are only opened on demand.
type Package struct {
	zr      *zip.Reader
	sheets  []models.SheetInfo
	strings *SharedStrings
}

// Sheet is a located worksheet part. Every call to Open returns an
// independent forward-only stream over the same part.
type Sheet struct {
	Info models.SheetInfo
	file *zip.File
}

// Open opens a fresh stream over the worksheet XML.
func (s *Sheet) Open() (io.ReadCloser, error) {
	return s.file.Open()
}

// OpenPackage reads the package directory, the workbook sheet list and the
// shared string table. Worksheet data is not touched.
func OpenPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	workbookPath := findWorkbookPath(zr)
	workbookXML, err := readZipFile(zr, workbookPath)
	if err != nil {
		return nil, err
	}
	if workbookXML == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidFormat, workbookPath)
	}

	relsXML, err := readZipFile(zr, relsPathFor(workbookPath))
	if err != nil {
		return nil, err
	}

	baseDir := path.Dir(workbookPath)
	rels := parseRelationships(relsXML)
	sheets := parseWorkbookSheets(workbookXML)
	for i := range sheets {
		if rel, ok := rels[sheets[i].RelID]; ok && strings.HasSuffix(rel.Type, relWorksheet) {
			sheets[i].Path = resolveRelativePath(rel.Target, baseDir)
		}
	}

	sstPath := ""
	for _, rel := range rels {
		if strings.HasSuffix(rel.Type, relSharedStrings) {
			sstPath = resolveRelativePath(rel.Target, baseDir)
			break
		}
	}
	if sstPath == "" {
		sstPath = path.Join(baseDir, "sharedStrings.xml")
	}

	sst := &SharedStrings{}
	if f := findZipFile(zr, sstPath); f != nil {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		sst, err = LoadSharedStrings(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}

	return &Package{zr: zr, sheets: sheets, strings: sst}, nil
}

// Sheets returns the workbook's sheets in workbook order.
func (p *Package) Sheets() []models.SheetInfo {
	out := make([]models.SheetInfo, len(p.sheets))
	copy(out, p.sheets)
	return out
}

// SharedStrings returns the package's shared string table.
func (p *Package) SharedStrings() *SharedStrings {
	return p.strings
}

// Locate finds the worksheet named name. An empty name selects the first
// sheet in workbook order.
func (p *Package) Locate(name string) (*Sheet, error) {
	for _, info := range p.sheets {
		if name != "" && info.Name != name {
			continue
		}
		f := findZipFile(p.zr, info.Path)
		if f == nil {
			// Chartsheets and dialog sheets have no worksheet part.
			if name == "" {
				continue
			}
			break
		}
		return &Sheet{Info: info, file: f}, nil
	}
	if name == "" {
		return nil, fmt.Errorf("%w: workbook has no worksheets", ErrSheetNotFound)
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

type relationship struct {
	Type   string
	Target string
}

// findWorkbookPath follows the root relationships to the main workbook part.
func findWorkbookPath(r *zip.Reader) string {
	data, err := readZipFile(r, "_rels/.rels")
	if err != nil || data == nil {
		return defaultWorkbookPath
	}
	for _, rel := range parseRelationships(data) {
		if strings.HasSuffix(rel.Type, relOfficeDocument) {
			return resolveRelativePath(rel.Target, "")
		}
	}
	return defaultWorkbookPath
}

// relsPathFor returns the relationships part for a part, e.g.
// xl/workbook.xml -> xl/_rels/workbook.xml.rels.
func relsPathFor(partPath string) string {
	dir, file := path.Split(partPath)
	return dir + "_rels/" + file + ".rels"
}

func findZipFile(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	// Some producers write backslashes or different casing.
	for _, f := range r.File {
		if strings.EqualFold(strings.ReplaceAll(f.Name, "\\", "/"), name) {
			return f
		}
	}
	return nil
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	f := findZipFile(r, name)
	if f == nil {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// resolveRelativePath resolves a relationship target against the directory
// of its source part. Absolute targets are package-rooted.
func resolveRelativePath(target, baseDir string) string {
	target = strings.ReplaceAll(target, "\\", "/")
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Clean(path.Join(baseDir, target)), "/")
}

// parseWorkbookSheets returns the sheet list in workbook order.
func parseWorkbookSheets(data []byte) []models.SheetInfo {
	var result []models.SheetInfo
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var info models.SheetInfo
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					info.Name = attr.Value
				case "id":
					info.RelID = attr.Value
				case "state":
					info.Hidden = attr.Value != "visible"
				}
			}
			if info.Name != "" && info.RelID != "" {
				info.Index = len(result)
				result = append(result, info)
			}
		}
	}

	return result
}

// parseRelationships maps relationship ids to their type and target.
func parseRelationships(data []byte) map[string]relationship {
	result := make(map[string]relationship)
	if data == nil {
		return result
	}
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID string
			var rel relationship
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Type":
					rel.Type = attr.Value
				case "Target":
					rel.Target = attr.Value
				}
			}
			if rID != "" {
				result[rID] = rel
			}
		}
	}

	return result
}
