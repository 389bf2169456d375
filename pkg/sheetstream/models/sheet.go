package models

// SheetInfo describes one sheet of a workbook.
type SheetInfo struct {
	// Name is the sheet display name.
	Name string `json:"name"`
	// Index is the 0-based position in workbook order.
	Index int `json:"index"`
	// RelID is the workbook relationship id of the sheet part.
	RelID string `json:"rel_id,omitempty"`
	// Path is the worksheet part name inside the package (empty if unresolved).
	Path string `json:"path,omitempty"`
	// Hidden reports whether the sheet state is hidden or veryHidden.
	Hidden bool `json:"hidden,omitempty"`
}
