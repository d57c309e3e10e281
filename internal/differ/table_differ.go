package differ

import (
	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/rs/zerolog"
)

// TableDiffer compares tables page by page.
//
// Tables on the same page are paired by discovery order. A missing partner is
// treated as an empty table. Pairs with equal non-empty shapes get a sampled
// cell-by-cell comparison; all other pairs get a single shape note.
type TableDiffer struct {
	logger        zerolog.Logger
	config        TableDifferConfig
	mapper        *TableMapper
	pageValidator *PageNumberValidator
}

// NewTableDiffer creates a TableDiffer with default configuration
func NewTableDiffer(logger zerolog.Logger) *TableDiffer {
	differ, _ := NewTableDifferBuilder(logger).Build()
	return differ
}

// Compare diffs tablesA against tablesB.
func (td *TableDiffer) Compare(tablesA, tablesB []models.Table) ([]models.TableDiffEntry, error) {
	if err := td.pageValidator.ValidateTables(tablesA, tablesB); err != nil {
		return nil, common.WrapError(err, "invalid tables")
	}

	maps := td.mapper.CreateMaps(tablesA, tablesB)
	entries := make([]models.TableDiffEntry, 0, max(len(tablesA), len(tablesB)))

	for _, page := range maps.Pages {
		listA, listB := maps.A[page], maps.B[page]
		pairs := max(len(listA), len(listB))

		for i := 0; i < pairs; i++ {
			tableA := tableAt(listA, i, page)
			tableB := tableAt(listB, i, page)
			entries = append(entries, td.comparePair(page, i, tableA, tableB))
		}
	}

	return entries, nil
}

func (td *TableDiffer) comparePair(page, index int, tableA, tableB models.Table) models.TableDiffEntry {
	shapeA, shapeB := tableA.Shape(), tableB.Shape()
	entry := models.TableDiffEntry{
		Page:       page,
		TableIndex: index,
		AShape:     shapeA,
		BShape:     shapeB,
	}

	if tableA.IsEmpty() || tableB.IsEmpty() || shapeA != shapeB {
		entry.Note = &models.ShapeNote{
			Note:   models.ShapeMismatchNote,
			AShape: shapeA,
			BShape: shapeB,
		}
		return entry
	}

	entry.CellDiffs = td.sampleCellDiffs(tableA, tableB, shapeA)
	if len(entry.CellDiffs) >= td.sampleLimit() {
		td.logger.Debug().
			Int("page", page).
			Int("table_index", index).
			Int("sample_limit", td.sampleLimit()).
			Msg("Cell diff sample limit reached")
	}
	return entry
}

// sampleCellDiffs walks cells row-major and stops at the sample limit.
func (td *TableDiffer) sampleCellDiffs(tableA, tableB models.Table, shape models.Shape) []models.CellDiff {
	limit := td.sampleLimit()
	diffs := make([]models.CellDiff, 0)

	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			va, vb := tableA.Cell(r, c), tableB.Cell(r, c)
			if va == vb {
				continue
			}
			diffs = append(diffs, models.CellDiff{Row: r, Col: c, A: va, B: vb})
			if len(diffs) >= limit {
				return diffs
			}
		}
	}

	return diffs
}

func (td *TableDiffer) sampleLimit() int {
	if td.config.SampleLimit <= 0 {
		return DefaultSampleLimit
	}
	return td.config.SampleLimit
}

func tableAt(tables []models.Table, i, page int) models.Table {
	if i < len(tables) {
		return tables[i]
	}
	return models.Table{PageNumber: page}
}
