package differ

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTextDiffer(t *testing.T, cfg TextDifferConfig) *TextDiffer {
	t.Helper()
	differ, err := NewTextDifferBuilder(zerolog.Nop()).WithConfig(cfg).Build()
	require.NoError(t, err)
	return differ
}

func numberedLines(prefix string, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%s%d\n", prefix, i)
	}
	return sb.String()
}

func TestTextDiffer_PagePairs(t *testing.T) {
	differ := NewTextDiffer(zerolog.Nop())

	entries, err := differ.Compare(
		[]models.PageText{{PageNumber: 1, Text: "alpha\nbeta\n"}},
		[]models.PageText{{PageNumber: 1, Text: "alpha\ngamma\n"}},
	)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, models.ScopePage, entry.Scope)
	require.NotNil(t, entry.Page)
	assert.Equal(t, 1, *entry.Page)
	assert.Equal(t, "--- A:page1\n+++ B:page1\n@@ -1,2 +1,2 @@\n alpha\n-beta\n+gamma\n", entry.DiffSnippet)
	assert.Equal(t, 1, entry.LinesAdded)
	assert.Equal(t, 1, entry.LinesDeleted)
	assert.False(t, entry.Truncated)
}

func TestTextDiffer_IdenticalPagesStillProduceEntries(t *testing.T) {
	differ := NewTextDiffer(zerolog.Nop())
	pages := []models.PageText{
		{PageNumber: 1, Text: "same\n"},
		{PageNumber: 2, Text: "also same"},
	}

	entries, err := differ.Compare(pages, pages)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for i, entry := range entries {
		assert.Equal(t, models.ScopePage, entry.Scope)
		assert.Equal(t, i+1, *entry.Page)
		assert.Empty(t, entry.DiffSnippet)
		assert.True(t, entry.IsIdentical())
		assert.Zero(t, entry.LinesAdded)
		assert.Zero(t, entry.LinesDeleted)
	}
}

func TestTextDiffer_HeadersUseEachSidesPageNumber(t *testing.T) {
	differ := NewTextDiffer(zerolog.Nop())

	entries, err := differ.Compare(
		[]models.PageText{{PageNumber: 3, Text: "x\n"}},
		[]models.PageText{{PageNumber: 7, Text: "y\n"}},
	)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, *entries[0].Page)
	assert.True(t, strings.HasPrefix(entries[0].DiffSnippet, "--- A:page3\n+++ B:page7\n"))
}

func TestTextDiffer_PageCountMismatch(t *testing.T) {
	differ := NewTextDiffer(zerolog.Nop())

	tests := []struct {
		name     string
		pagesA   []models.PageText
		pagesB   []models.PageText
		expected string
	}{
		{
			name:     "extra page in B",
			pagesA:   []models.PageText{{PageNumber: 1, Text: "x"}},
			pagesB:   []models.PageText{{PageNumber: 1, Text: "x"}, {PageNumber: 2, Text: "y"}},
			expected: "--- A:full\n+++ B:full\n@@ -1 +1,2 @@\n x\n+y\n",
		},
		{
			name:     "A has no pages",
			pagesA:   nil,
			pagesB:   []models.PageText{{PageNumber: 1, Text: "hello"}},
			expected: "--- A:full\n+++ B:full\n@@ -0,0 +1 @@\n+hello\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := differ.Compare(tt.pagesA, tt.pagesB)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, models.ScopeFull, entries[0].Scope)
			assert.Nil(t, entries[0].Page)
			assert.Equal(t, tt.expected, entries[0].DiffSnippet)
		})
	}
}

func TestTextDiffer_BothEmpty(t *testing.T) {
	entries, err := NewTextDiffer(zerolog.Nop()).Compare(nil, []models.PageText{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTextDiffer_Truncation(t *testing.T) {
	pagesA := []models.PageText{{PageNumber: 1, Text: numberedLines("a", 100)}}
	pagesB := []models.PageText{{PageNumber: 1, Text: numberedLines("b", 100)}}

	tests := []struct {
		name         string
		maxLines     int
		expectedHead int
		expectedTail int
	}{
		{name: "default limit", maxLines: 0, expectedHead: 30, expectedTail: 30},
		{name: "negative falls back to default", maxLines: -5, expectedHead: 30, expectedTail: 30},
		{name: "odd limit puts the extra line in the tail", maxLines: 7, expectedHead: 3, expectedTail: 4},
		{name: "limit below floor keeps two lines", maxLines: 1, expectedHead: 1, expectedTail: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTextDifferConfig()
			cfg.MaxDiffLines = tt.maxLines
			entries, err := newTestTextDiffer(t, cfg).Compare(pagesA, pagesB)
			require.NoError(t, err)
			require.Len(t, entries, 1)

			entry := entries[0]
			assert.True(t, entry.Truncated)

			lines := SplitLinesKeepEnds(entry.DiffSnippet)
			require.Len(t, lines, tt.expectedHead+1+tt.expectedTail)
			assert.Equal(t, TruncationMarker, lines[tt.expectedHead])
			assert.Equal(t, 1, strings.Count(entry.DiffSnippet, TruncationMarker))
			assert.Equal(t, "--- A:page1\n", lines[0])
			assert.Equal(t, "+b99\n", lines[len(lines)-1])

			// Statistics describe the whole diff, not the truncated snippet.
			assert.Equal(t, 100, entry.LinesAdded)
			assert.Equal(t, 100, entry.LinesDeleted)
		})
	}
}

func TestTextDiffer_ShortDiffNotTruncated(t *testing.T) {
	cfg := DefaultTextDifferConfig()
	cfg.MaxDiffLines = 6
	entries, err := newTestTextDiffer(t, cfg).Compare(
		[]models.PageText{{PageNumber: 1, Text: "alpha\nbeta\n"}},
		[]models.PageText{{PageNumber: 1, Text: "alpha\ngamma\n"}},
	)
	require.NoError(t, err)
	assert.False(t, entries[0].Truncated)
	assert.NotContains(t, entries[0].DiffSnippet, TruncationMarker)
}

func TestTextDiffer_UnterminatedLastLine(t *testing.T) {
	entries, err := NewTextDiffer(zerolog.Nop()).Compare(
		[]models.PageText{{PageNumber: 1, Text: "alpha\nbeta"}},
		[]models.PageText{{PageNumber: 1, Text: "alpha\ngamma"}},
	)
	require.NoError(t, err)
	assert.Contains(t, entries[0].DiffSnippet, "-beta\n+gamma\n")
}

func TestTextDiffer_UnicodeNormalization(t *testing.T) {
	pagesA := []models.PageText{{PageNumber: 1, Text: "caf\u00e9\n"}}
	pagesB := []models.PageText{{PageNumber: 1, Text: "cafe\u0301\n"}}

	entries, err := NewTextDiffer(zerolog.Nop()).Compare(pagesA, pagesB)
	require.NoError(t, err)
	assert.Empty(t, entries[0].DiffSnippet)

	cfg := DefaultTextDifferConfig()
	cfg.NormalizeUnicode = false
	entries, err = newTestTextDiffer(t, cfg).Compare(pagesA, pagesB)
	require.NoError(t, err)
	assert.NotEmpty(t, entries[0].DiffSnippet)
}

func TestTextDiffer_InvalidPageNumbers(t *testing.T) {
	differ := NewTextDiffer(zerolog.Nop())

	_, err := differ.Compare(
		[]models.PageText{{PageNumber: 1, Text: "a"}},
		[]models.PageText{{PageNumber: 0, Text: "b"}},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))

	var validationErr *common.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "pages_b[0].page_number", validationErr.Field)
}

func TestSplitLinesKeepEnds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: []string{}},
		{name: "single unterminated", input: "a", expected: []string{"a\n"}},
		{name: "lf", input: "a\nb\n", expected: []string{"a\n", "b\n"}},
		{name: "crlf", input: "a\r\nb", expected: []string{"a\r\n", "b\n"}},
		{name: "bare cr", input: "a\rb\r", expected: []string{"a\r", "b\r"}},
		{name: "blank lines", input: "\n\n", expected: []string{"\n", "\n"}},
		{name: "form feed", input: "page1\fpage2", expected: []string{"page1\f", "page2\n"}},
		{name: "vertical tab", input: "a\vb\n", expected: []string{"a\v", "b\n"}},
		{name: "record separators", input: "a\x1cb\x1dc\x1e", expected: []string{"a\x1c", "b\x1d", "c\x1e"}},
		{name: "next line", input: "a\u0085b", expected: []string{"a\u0085", "b\n"}},
		{name: "unicode separators", input: "a\u2028b\u2029c", expected: []string{"a\u2028", "b\u2029", "c\n"}},
		{name: "cr then lf stays one break", input: "a\r\n\nb", expected: []string{"a\r\n", "\n", "b\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLinesKeepEnds(tt.input))
		})
	}
}

func TestDiffProcessor_LineStats(t *testing.T) {
	dp := NewDiffProcessor(DefaultDiffConfig())
	calc := NewDiffStatsCalculator()

	stats := calc.CalculateStats(dp.ProcessLineDiff("a\nb\nc\n", "a\nx\ny\nc\n"))
	assert.Equal(t, 2, stats.LinesAdded)
	assert.Equal(t, 1, stats.LinesDeleted)
	assert.False(t, stats.IsIdentical)

	stats = calc.CalculateStats(dp.ProcessLineDiff("same\n", "same\n"))
	assert.True(t, stats.IsIdentical)

	diffs := dp.ProcessDiff("hello world", "hello gopher")
	assert.NotEmpty(t, diffs)
}

func TestTrimLineBreak(t *testing.T) {
	assert.Equal(t, "a", TrimLineBreak("a\r\n"))
	assert.Equal(t, "a", TrimLineBreak("a\n"))
	assert.Equal(t, "a", TrimLineBreak("a\u2029"))
	assert.Equal(t, "a", TrimLineBreak("a"))
	assert.Equal(t, "", TrimLineBreak(""))
}

func TestTextDiffer_FormFeedSeparatesLines(t *testing.T) {
	entries, err := NewTextDiffer(zerolog.Nop()).Compare(
		[]models.PageText{{PageNumber: 1, Text: "alpha\fbeta\fgamma"}},
		[]models.PageText{{PageNumber: 1, Text: "alpha\fdelta\fgamma"}},
	)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Contains(t, entries[0].DiffSnippet, "-beta\f+delta\f")
	assert.Equal(t, 1, entries[0].LinesAdded)
	assert.Equal(t, 1, entries[0].LinesDeleted)
}

func TestTextDiffer_TerminatorOnlyChange(t *testing.T) {
	entries, err := NewTextDiffer(zerolog.Nop()).Compare(
		[]models.PageText{{PageNumber: 1, Text: "a\r\nb\n"}},
		[]models.PageText{{PageNumber: 1, Text: "a\rb\n"}},
	)
	require.NoError(t, err)

	assert.NotEmpty(t, entries[0].DiffSnippet)
	assert.Equal(t, 1, entries[0].LinesAdded)
	assert.Equal(t, 1, entries[0].LinesDeleted)
}

func TestTextDiffer_IdenticalPagesHaveEmptyEntry(t *testing.T) {
	entries, err := NewTextDiffer(zerolog.Nop()).Compare(
		[]models.PageText{{PageNumber: 1, Text: "same\ntext"}, {PageNumber: 2, Text: ""}},
		[]models.PageText{{PageNumber: 1, Text: "same\ntext\n"}, {PageNumber: 2, Text: ""}},
	)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, entry := range entries {
		assert.Empty(t, entry.DiffSnippet)
		assert.False(t, entry.Truncated)
		assert.Zero(t, entry.LinesAdded)
		assert.Zero(t, entry.LinesDeleted)
	}
}
