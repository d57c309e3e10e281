package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T) *PDFExtractor {
	t.Helper()
	e, err := NewPDFExtractorBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)
	return e
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		name     string
		runs     []textRun
		expected []string
	}{
		{name: "empty row", runs: nil, expected: nil},
		{
			name:     "single run",
			runs:     []textRun{{X: 10, S: "Total"}},
			expected: []string{"Total"},
		},
		{
			name:     "wide gap splits cells",
			runs:     []textRun{{X: 10, S: "Name"}, {X: 100, S: "Qty"}, {X: 200, S: "Price"}},
			expected: []string{"Name", "Qty", "Price"},
		},
		{
			name:     "adjacent glyphs join",
			runs:     []textRun{{X: 10, S: "A"}, {X: 14.5, S: "B"}},
			expected: []string{"AB"},
		},
		{
			name:     "small gap becomes a space",
			runs:     []textRun{{X: 10, S: "unit"}, {X: 31, S: "price"}},
			expected: []string{"unit price"},
		},
		{
			name:     "blank runs are dropped",
			runs:     []textRun{{X: 10, S: "  "}, {X: 100, S: "x"}},
			expected: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitCells(tt.runs, config.DefaultExtractorColumnGap))
		})
	}
}

func TestDetectTables(t *testing.T) {
	rows := [][]string{
		{"Heading"},
		{"a", "b"},
		{"c", "d", "e"},
		{"paragraph"},
		{"lonely", "row"},
		{},
		{"x", "y"},
		{"z", "w"},
	}

	tables := detectTables(rows, 2)
	require.Len(t, tables, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d", "e"}}, tables[0])
	assert.Equal(t, [][]string{{"x", "y"}, {"z", "w"}}, tables[1])

	assert.Empty(t, detectTables(rows, 3))
	assert.Empty(t, detectTables(nil, 2))
}

func TestImageExtension(t *testing.T) {
	assert.Equal(t, "png", imageExtension("png"))
	assert.Equal(t, "jpg", imageExtension("JPEG"))
	assert.Equal(t, "tif", imageExtension(".tif"))
	assert.Equal(t, "bin", imageExtension(""))
}

func TestPDFExtractor_MissingDocument(t *testing.T) {
	_, err := newTestExtractor(t).Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrExtractionFailed))

	_, err = newTestExtractor(t).Extract(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestPDFExtractor_UnparseableDocumentYieldsEmptyContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0644))

	e := newTestExtractor(t)

	_, err := e.ExtractTextPages(path)
	assert.True(t, errors.Is(err, common.ErrExtractionFailed))

	content, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.NotNil(t, content.Pages)
	assert.Empty(t, content.Pages)
	assert.Empty(t, content.Tables)
	assert.Empty(t, content.Images)
	assert.True(t, content.IsEmpty())
}

func TestPDFExtractor_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestExtractor(t).Extract(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDFExtractorBuilder(t *testing.T) {
	e, err := NewPDFExtractorBuilder(zerolog.Nop()).
		WithConfig(config.ExtractorConfig{ExtractTables: true}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultExtractorColumnGap, e.config.ColumnGap)
	assert.Equal(t, config.DefaultExtractorMinTableColumns, e.config.MinTableColumns)
	assert.Equal(t, config.DefaultExtractorThumbnailSize, e.config.ThumbnailSize)
	assert.False(t, e.config.ExtractImages)

	_, err = NewPDFExtractorBuilder(zerolog.Nop()).
		WithConfig(config.ExtractorConfig{ColumnGap: -1}).
		Build()
	assert.Error(t, err)
}
