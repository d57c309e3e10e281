package differ

import (
	"fmt"
	"strings"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// TextDiffer produces unified diffs between the pages of two documents.
//
// When both documents have the same number of pages, pages are paired by
// position and each pair yields one entry. Otherwise the pages of each
// document are joined with "\n" and a single whole-document entry is produced.
type TextDiffer struct {
	logger          zerolog.Logger
	config          TextDifferConfig
	processor       *DiffProcessor
	statsCalculator *DiffStatsCalculator
	pageValidator   *PageNumberValidator
}

// NewTextDiffer creates a TextDiffer with default configuration
func NewTextDiffer(logger zerolog.Logger) *TextDiffer {
	differ, _ := NewTextDifferBuilder(logger).Build()
	return differ
}

// Compare diffs pagesA against pagesB.
func (td *TextDiffer) Compare(pagesA, pagesB []models.PageText) ([]models.TextDiffEntry, error) {
	if err := td.pageValidator.ValidatePages(pagesA, pagesB); err != nil {
		return nil, common.WrapError(err, "invalid text pages")
	}

	if len(pagesA) == len(pagesB) {
		return td.comparePages(pagesA, pagesB)
	}

	td.logger.Debug().
		Int("pages_a", len(pagesA)).
		Int("pages_b", len(pagesB)).
		Msg("Page counts differ, falling back to whole-document diff")

	entry, err := td.compareFull(pagesA, pagesB)
	if err != nil {
		return nil, err
	}
	return []models.TextDiffEntry{entry}, nil
}

func (td *TextDiffer) comparePages(pagesA, pagesB []models.PageText) ([]models.TextDiffEntry, error) {
	entries := make([]models.TextDiffEntry, 0, len(pagesA))

	for i := range pagesA {
		pa, pb := pagesA[i], pagesB[i]
		entry, err := td.diffTexts(
			pa.Text, pb.Text,
			fmt.Sprintf("A:page%d", pa.PageNumber),
			fmt.Sprintf("B:page%d", pb.PageNumber),
			NewTextDiffEntryBuilder(models.ScopePage, td.config.effectiveMaxLines()).WithPage(pa.PageNumber),
		)
		if err != nil {
			return nil, common.WrapErrorf(err, "failed to diff page %d", pa.PageNumber)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (td *TextDiffer) compareFull(pagesA, pagesB []models.PageText) (models.TextDiffEntry, error) {
	entry, err := td.diffTexts(
		joinPages(pagesA), joinPages(pagesB),
		"A:full", "B:full",
		NewTextDiffEntryBuilder(models.ScopeFull, td.config.effectiveMaxLines()),
	)
	if err != nil {
		return models.TextDiffEntry{}, common.WrapError(err, "failed to diff full documents")
	}
	return entry, nil
}

func (td *TextDiffer) diffTexts(textA, textB, fromFile, toFile string, builder *TextDiffEntryBuilder) (models.TextDiffEntry, error) {
	if td.config.NormalizeUnicode {
		textA = norm.NFC.String(textA)
		textB = norm.NFC.String(textB)
	}

	linesA := SplitLinesKeepEnds(textA)
	linesB := SplitLinesKeepEnds(textB)

	lineDiffs := td.processor.ProcessLineDiff(lineKeyText(linesA), lineKeyText(linesB))
	stats := td.statsCalculator.CalculateStats(lineDiffs)
	if stats.IsIdentical {
		return builder.WithStats(stats).Build(), nil
	}

	diffText, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        linesA,
		B:        linesB,
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  td.config.effectiveContextLines(),
	})
	if err != nil {
		return models.TextDiffEntry{}, err
	}

	return builder.
		WithDiffLines(SplitLinesKeepEnds(diffText)).
		WithStats(stats).
		Build(), nil
}

func joinPages(pages []models.PageText) string {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n")
}
