package models

// PageText holds the extracted text of a single page.
type PageText struct {
	PageNumber int    `json:"page"`
	Text       string `json:"text"`
}

// Table is a 2-D grid of cell strings found on a page.
type Table struct {
	PageNumber int        `json:"page"`
	Rows       [][]string `json:"rows"`
}

// Shape returns the table dimensions. Cols is the width of the widest row.
func (t Table) Shape() Shape {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return Shape{Rows: len(t.Rows), Cols: cols}
}

// IsEmpty reports whether the table has no cells.
func (t Table) IsEmpty() bool {
	s := t.Shape()
	return s.Rows == 0 || s.Cols == 0
}

// Cell returns the value at (row, col), or "" for cells missing from ragged rows.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ImageAsset is an embedded image pulled out of a document.
// Name is unique within one document.
type ImageAsset struct {
	PageNumber   int    `json:"page"`
	Name         string `json:"name"`
	Data         []byte `json:"-"`
	Width        *int   `json:"width,omitempty"`
	Height       *int   `json:"height,omitempty"`
	ThumbnailB64 string `json:"thumb_b64,omitempty"`
}

// DocumentContent bundles everything extracted from one document.
type DocumentContent struct {
	Pages  []PageText   `json:"pages"`
	Tables []Table      `json:"tables"`
	Images []ImageAsset `json:"images"`
}

// IsEmpty reports whether nothing was extracted.
func (d DocumentContent) IsEmpty() bool {
	return len(d.Pages) == 0 && len(d.Tables) == 0 && len(d.Images) == 0
}
