package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Shape(t *testing.T) {
	tests := []struct {
		name     string
		table    Table
		expected Shape
		empty    bool
	}{
		{name: "no rows", table: Table{PageNumber: 1}, expected: Shape{0, 0}, empty: true},
		{name: "rectangular", table: Table{Rows: [][]string{{"a", "b"}, {"c", "d"}}}, expected: Shape{2, 2}},
		{name: "ragged uses widest row", table: Table{Rows: [][]string{{"a"}, {"b", "c", "d"}}}, expected: Shape{2, 3}},
		{name: "rows without cells", table: Table{Rows: [][]string{{}, {}}}, expected: Shape{2, 0}, empty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.table.Shape())
			assert.Equal(t, tt.empty, tt.table.IsEmpty())
		})
	}
}

func TestTable_CellPadsRaggedRows(t *testing.T) {
	tbl := Table{Rows: [][]string{{"a"}, {"b", "c"}}}
	assert.Equal(t, "a", tbl.Cell(0, 0))
	assert.Equal(t, "", tbl.Cell(0, 1))
	assert.Equal(t, "c", tbl.Cell(1, 1))
	assert.Equal(t, "", tbl.Cell(5, 0))
}

func TestTableDiffEntry_JSONShape(t *testing.T) {
	t.Run("note entry", func(t *testing.T) {
		entry := TableDiffEntry{
			Page:   2,
			AShape: Shape{2, 2},
			BShape: Shape{0, 0},
			Note:   &ShapeNote{Note: ShapeMismatchNote, AShape: Shape{2, 2}, BShape: Shape{0, 0}},
		}
		data, err := json.Marshal(entry)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"page": 2,
			"table_index": 0,
			"table_A_shape": [2, 2],
			"table_B_shape": [0, 0],
			"cell_diffs_sample": [{"note": "shape mismatch or missing table", "A_shape": [2, 2], "B_shape": [0, 0]}]
		}`, string(data))
		assert.True(t, entry.HasDifferences())
	})

	t.Run("identical tables keep an empty sample", func(t *testing.T) {
		entry := TableDiffEntry{Page: 1, AShape: Shape{1, 1}, BShape: Shape{1, 1}, CellDiffs: []CellDiff{}}
		data, err := json.Marshal(entry)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"cell_diffs_sample":[]`)
		assert.False(t, entry.HasDifferences())
	})
}

func TestImageAsset_BytesNeverSerialized(t *testing.T) {
	data, err := json.Marshal(ImageAsset{PageNumber: 1, Name: "p1_img1.png", Data: []byte{1, 2, 3}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "AQID")
	assert.Contains(t, string(data), `"name":"p1_img1.png"`)
}

func TestComparisonReport_Overview(t *testing.T) {
	report := &ComparisonReport{
		TextDiffs: []TextDiffEntry{
			{Scope: ScopePage, Page: IntPtr(1), DiffSnippet: ""},
			{Scope: ScopePage, Page: IntPtr(2), DiffSnippet: "--- A:page2\n", Truncated: true},
		},
		TableDiffs: []TableDiffEntry{
			{Page: 3, CellDiffs: []CellDiff{{Row: 0, Col: 0, A: "1", B: "2"}, {Row: 1, Col: 0, A: "x", B: "y"}}},
			{Page: 1, Note: &ShapeNote{Note: ShapeMismatchNote}},
		},
		ImageDiffs: ImageMatchResult{
			Matches:    []ImageMatch{{Distance: 0}},
			UnmatchedA: []ImageAsset{{Name: "a"}},
		},
		Semantic: []SemanticFlag{{Page: IntPtr(2), Similarity: Float64Ptr(0.5)}},
	}

	ov := report.Overview()
	assert.Equal(t, 2, ov.PagesCompared)
	assert.Equal(t, 1, ov.ChangedPages)
	assert.Equal(t, 2, ov.Tables)
	assert.Equal(t, 2, ov.CellDiffs)
	assert.Equal(t, 1, ov.ImageMatches)
	assert.Equal(t, 1, ov.UnmatchedA)
	assert.Equal(t, 0, ov.UnmatchedB)
	assert.Equal(t, 1, ov.SemanticFlags)
	assert.Equal(t, 3, ov.MaxPageNumber)
	assert.True(t, ov.HasTruncations)
}

func TestTextDiffEntry_FullScopeHasNullPage(t *testing.T) {
	data, err := json.Marshal(TextDiffEntry{Scope: ScopeFull})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"page":null`)
	assert.Contains(t, string(data), `"scope":"full"`)
}
