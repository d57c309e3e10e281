package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/ledongthuc/pdf"
)

const (
	// approxGlyphWidth estimates the advance of one character in points,
	// since row text carries a start position but no width.
	approxGlyphWidth = 4.5
	// wordGap is the distance above which adjacent runs are joined with a space
	wordGap = 2.0
)

// textRun is one positioned piece of text on a row
type textRun struct {
	X float64
	S string
}

// ExtractTables detects grid-like runs of rows on every page.
// Consecutive rows that split into at least MinTableColumns cells form one table.
func (e *PDFExtractor) ExtractTables(path string) (tables []models.Table, err error) {
	defer recoverStage(path, "tables", &err)

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, common.NewExtractionError(path, "tables", err)
	}
	defer func() { _ = file.Close() }()

	tables = []models.Table{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			e.logger.Debug().Err(rowErr).Str("path", path).Int("page", i).Msg("Could not read page rows")
			continue
		}

		cellRows := make([][]string, 0, len(rows))
		for _, row := range rows {
			runs := make([]textRun, 0, len(row.Content))
			for _, text := range row.Content {
				runs = append(runs, textRun{X: text.X, S: text.S})
			}
			cellRows = append(cellRows, splitCells(runs, e.config.ColumnGap))
		}

		for _, grid := range detectTables(cellRows, e.config.MinTableColumns) {
			tables = append(tables, models.Table{PageNumber: i, Rows: grid})
		}
	}

	return tables, nil
}

// splitCells groups runs sorted by X into cells separated by at least columnGap points
func splitCells(runs []textRun, columnGap float64) []string {
	var cells []string
	var current strings.Builder
	prevEnd := 0.0

	flush := func() {
		if cell := strings.TrimSpace(current.String()); cell != "" {
			cells = append(cells, cell)
		}
		current.Reset()
	}

	for i, run := range runs {
		if i > 0 {
			gap := run.X - prevEnd
			switch {
			case gap >= columnGap:
				flush()
			case gap >= wordGap:
				current.WriteByte(' ')
			}
		}
		current.WriteString(run.S)
		prevEnd = run.X + float64(utf8.RuneCountInString(run.S))*approxGlyphWidth
	}
	flush()

	return cells
}

// detectTables returns every maximal block of at least two consecutive rows
// having minColumns or more cells
func detectTables(rows [][]string, minColumns int) [][][]string {
	var tables [][][]string
	var block [][]string

	closeBlock := func() {
		if len(block) >= 2 {
			tables = append(tables, block)
		}
		block = nil
	}

	for _, row := range rows {
		if len(row) >= minColumns {
			block = append(block, row)
			continue
		}
		closeBlock()
	}
	closeBlock()

	return tables
}
