package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TextDiffScope tells whether a text entry compares one page pair or whole documents.
type TextDiffScope string

const (
	// ScopePage marks a per-page comparison.
	ScopePage TextDiffScope = "page"
	// ScopeFull marks a whole-document comparison used when page counts differ.
	ScopeFull TextDiffScope = "full"
)

// ShapeMismatchNote is the fixed note text for tables that cannot be compared cell by cell.
const ShapeMismatchNote = "shape mismatch or missing table"

// TextDiffEntry is one unified-diff result.
type TextDiffEntry struct {
	Scope        TextDiffScope `json:"scope"`
	Page         *int          `json:"page"`
	DiffSnippet  string        `json:"diff_snippet"`
	LinesAdded   int           `json:"lines_added"`
	LinesDeleted int           `json:"lines_deleted"`
	Truncated    bool          `json:"truncated,omitempty"`
}

// IsIdentical reports whether the compared texts had no differences.
func (e TextDiffEntry) IsIdentical() bool {
	return e.DiffSnippet == ""
}

// Shape is a (rows, cols) pair.
type Shape struct {
	Rows int
	Cols int
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}

// MarshalJSON encodes the shape as a [rows, cols] pair.
func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Rows, s.Cols})
}

// UnmarshalJSON decodes a [rows, cols] pair.
func (s *Shape) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	s.Rows, s.Cols = pair[0], pair[1]
	return nil
}

// CellDiff is a single differing cell.
type CellDiff struct {
	Row int    `json:"row"`
	Col int    `json:"col"`
	A   string `json:"A"`
	B   string `json:"B"`
}

// ShapeNote explains why a table pair was not compared cell by cell.
type ShapeNote struct {
	Note   string `json:"note"`
	AShape Shape  `json:"A_shape"`
	BShape Shape  `json:"B_shape"`
}

// TableDiffEntry is the comparison of one positional table pair on a page.
// Exactly one of CellDiffs (non-nil) or Note is set.
type TableDiffEntry struct {
	Page       int
	TableIndex int
	AShape     Shape
	BShape     Shape
	CellDiffs  []CellDiff
	Note       *ShapeNote
}

// MarshalJSON writes either the cell diffs or the shape note under cell_diffs_sample.
func (e TableDiffEntry) MarshalJSON() ([]byte, error) {
	sample := make([]interface{}, 0, len(e.CellDiffs)+1)
	if e.Note != nil {
		sample = append(sample, e.Note)
	}
	for _, cd := range e.CellDiffs {
		sample = append(sample, cd)
	}

	return json.Marshal(struct {
		Page       int           `json:"page"`
		TableIndex int           `json:"table_index"`
		AShape     Shape         `json:"table_A_shape"`
		BShape     Shape         `json:"table_B_shape"`
		Sample     []interface{} `json:"cell_diffs_sample"`
	}{e.Page, e.TableIndex, e.AShape, e.BShape, sample})
}

// HasDifferences reports whether the pair differs at all.
func (e TableDiffEntry) HasDifferences() bool {
	return e.Note != nil || len(e.CellDiffs) > 0
}

// ImageMatch pairs an image from A with its closest image from B.
type ImageMatch struct {
	A        ImageAsset `json:"A"`
	B        ImageAsset `json:"B"`
	Distance int        `json:"distance"`
}

// ImageMatchResult is the output of image matching.
type ImageMatchResult struct {
	Matches           []ImageMatch `json:"matches"`
	UnmatchedA        []ImageAsset `json:"unmatched_A"`
	UnmatchedB        []ImageAsset `json:"unmatched_B"`
	DistanceThreshold int          `json:"distance_threshold"`
}

// SemanticFlag marks a page whose meaning drifted, or carries a free-form note.
type SemanticFlag struct {
	Page       *int     `json:"page,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
	Note       string   `json:"note,omitempty"`
}

// ReportMeta identifies a comparison run.
type ReportMeta struct {
	ComparisonID string    `json:"comparison_id,omitempty"`
	FileA        string    `json:"file_a"`
	FileB        string    `json:"file_b"`
	Pro          bool      `json:"pro"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// ComparisonReport is the full result of comparing two documents.
type ComparisonReport struct {
	Meta       ReportMeta       `json:"meta"`
	TextDiffs  []TextDiffEntry  `json:"text_diffs"`
	TableDiffs []TableDiffEntry `json:"table_diffs"`
	ImageDiffs ImageMatchResult `json:"image_diffs"`
	Semantic   []SemanticFlag   `json:"semantic,omitempty"`
	Summary    string           `json:"summary,omitempty"`
}

// ReportOverview holds the headline counts shown at the top of a report.
type ReportOverview struct {
	PagesCompared  int
	TextDiffs      int
	ChangedPages   int
	Tables         int
	CellDiffs      int
	ImageMatches   int
	UnmatchedA     int
	UnmatchedB     int
	SemanticFlags  int
	MaxPageNumber  int
	HasTruncations bool
}

// Overview computes the report KPIs.
func (r *ComparisonReport) Overview() ReportOverview {
	ov := ReportOverview{
		TextDiffs:     len(r.TextDiffs),
		Tables:        len(r.TableDiffs),
		ImageMatches:  len(r.ImageDiffs.Matches),
		UnmatchedA:    len(r.ImageDiffs.UnmatchedA),
		UnmatchedB:    len(r.ImageDiffs.UnmatchedB),
		SemanticFlags: len(r.Semantic),
	}

	for _, td := range r.TextDiffs {
		if td.Scope == ScopePage {
			ov.PagesCompared++
		}
		if !td.IsIdentical() {
			ov.ChangedPages++
		}
		if td.Truncated {
			ov.HasTruncations = true
		}
		if td.Page != nil && *td.Page > ov.MaxPageNumber {
			ov.MaxPageNumber = *td.Page
		}
	}

	for _, tb := range r.TableDiffs {
		ov.CellDiffs += len(tb.CellDiffs)
		if tb.Page > ov.MaxPageNumber {
			ov.MaxPageNumber = tb.Page
		}
	}

	return ov
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
