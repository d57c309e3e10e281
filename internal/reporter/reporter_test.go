package reporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.ComparisonReport {
	return &models.ComparisonReport{
		Meta: models.ReportMeta{
			ComparisonID: "cmp-42",
			FileA:        "invoice_v1.pdf",
			FileB:        "invoice_v2.pdf",
			Pro:          true,
			GeneratedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		TextDiffs: []models.TextDiffEntry{
			{
				Scope:        models.ScopePage,
				Page:         models.IntPtr(1),
				DiffSnippet:  "--- A:page1\n+++ B:page1\n@@ -1,2 +1,2 @@\n alpha\n-beta\n+<gamma>\n",
				LinesAdded:   1,
				LinesDeleted: 1,
			},
			{Scope: models.ScopePage, Page: models.IntPtr(2)},
		},
		TableDiffs: []models.TableDiffEntry{
			{
				Page: 1, AShape: models.Shape{Rows: 2, Cols: 2}, BShape: models.Shape{Rows: 2, Cols: 2},
				CellDiffs: []models.CellDiff{
					{Row: 0, Col: 1, A: "100", B: "120"},
					{Row: 1, Col: 0, A: "", B: "new"},
					{Row: 1, Col: 1, A: "old", B: ""},
				},
			},
			{
				Page: 2, AShape: models.Shape{Rows: 2, Cols: 2},
				Note: &models.ShapeNote{Note: models.ShapeMismatchNote, AShape: models.Shape{Rows: 2, Cols: 2}},
			},
		},
		ImageDiffs: models.ImageMatchResult{
			Matches: []models.ImageMatch{{
				A:        models.ImageAsset{PageNumber: 1, Name: "p1_img1.png", ThumbnailB64: "QUJD"},
				B:        models.ImageAsset{PageNumber: 1, Name: "p1_img1.png", ThumbnailB64: "REVG"},
				Distance: 3,
			}},
			UnmatchedA:        []models.ImageAsset{{PageNumber: 2, Name: "p2_img1.jpg", ThumbnailB64: "R0hJ"}},
			UnmatchedB:        []models.ImageAsset{},
			DistanceThreshold: 10,
		},
		Semantic: []models.SemanticFlag{
			{Page: models.IntPtr(1), Similarity: models.Float64Ptr(0.5)},
			{Page: models.IntPtr(2), Similarity: models.Float64Ptr(0.83)},
			{Note: "page count mismatch: 2 vs 3"},
		},
		Summary: "Two pages differ.",
	}
}

func newTestHTMLReporter(t *testing.T, cfg config.ReporterConfig) *HTMLReporter {
	t.Helper()
	r, err := NewHTMLReporter(cfg, zerolog.Nop())
	require.NoError(t, err)
	return r
}

func TestHTMLReporter_Render(t *testing.T) {
	r := newTestHTMLReporter(t, config.NewDefaultReporterConfig())

	var buf bytes.Buffer
	require.NoError(t, r.Render(sampleReport(), &buf))
	out := buf.String()

	assert.Contains(t, out, "<title>PDF Comparison Report</title>")
	assert.Contains(t, out, "A: invoice_v1.pdf")
	assert.Contains(t, out, `<span class="badge pro">Pro mode</span>`)
	assert.Contains(t, out, "Comparison cmp-42")
	assert.Contains(t, out, "2026-01-02 03:04:05 UTC")

	// text diff lines are classified and escaped
	assert.Contains(t, out, `<span class="diff-del">-beta</span>`)
	assert.Contains(t, out, `<span class="diff-add">&#43;&lt;gamma&gt;</span>`)
	assert.Contains(t, out, "Scope: page (page 1)")
	assert.Contains(t, out, "No differences.")

	// table rows follow the added/removed/changed rule
	assert.Contains(t, out, `<tr class="changed">`)
	assert.Contains(t, out, `<tr class="added">`)
	assert.Contains(t, out, `<tr class="removed">`)
	assert.Contains(t, out, "<del>0</del><ins>2</ins>")
	assert.Contains(t, out, "shape mismatch or missing table (A (2, 2), B (0, 0))")

	// images
	assert.Contains(t, out, `src="data:image/png;base64,QUJD"`)
	assert.Contains(t, out, "distance 3")
	assert.Contains(t, out, "Unmatched A")
	assert.NotContains(t, out, "Unmatched B")
	assert.Contains(t, out, "p2_img1.jpg (page 2)")

	// semantic flags
	assert.Contains(t, out, `<span class="badge bad">0.500</span>`)
	assert.Contains(t, out, `<span class="badge warn">0.830</span>`)
	assert.Contains(t, out, "page count mismatch: 2 vs 3")
	assert.Contains(t, out, "Two pages differ.")
	assert.Contains(t, out, "Semantic flags: 3")
}

func TestHTMLReporter_WithoutThumbnails(t *testing.T) {
	cfg := config.NewDefaultReporterConfig()
	cfg.EmbedThumbnails = false
	r := newTestHTMLReporter(t, cfg)

	var buf bytes.Buffer
	require.NoError(t, r.Render(sampleReport(), &buf))
	assert.NotContains(t, buf.String(), "data:image/png")
	assert.Contains(t, buf.String(), "p1_img1.png")
}

func TestHTMLReporter_EmptyReport(t *testing.T) {
	r := newTestHTMLReporter(t, config.NewDefaultReporterConfig())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&models.ComparisonReport{}, &buf))
	out := buf.String()
	assert.Contains(t, out, "No text to compare.")
	assert.Contains(t, out, "No tables found.")
	assert.Contains(t, out, "No image matches.")
	assert.NotContains(t, out, "Semantic text flags")
	assert.NotContains(t, out, "Pro mode")

	assert.Error(t, r.Render(nil, &buf))
}

func TestHTMLReporter_Generate(t *testing.T) {
	cfg := config.NewDefaultReporterConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	r := newTestHTMLReporter(t, cfg)

	path, err := r.Generate(sampleReport(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, config.DefaultReporterHTMLFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))

	custom := filepath.Join(t.TempDir(), "nested", "custom.html")
	path, err = r.Generate(sampleReport(), custom)
	require.NoError(t, err)
	assert.Equal(t, custom, path)
	assert.FileExists(t, custom)
}

func TestJSONReporter_Write(t *testing.T) {
	cfg := config.NewDefaultReporterConfig()
	cfg.OutputDir = t.TempDir()
	r := NewJSONReporter(cfg, zerolog.Nop())

	path, err := r.Write(sampleReport(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, config.DefaultReporterJSONFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "meta")
	assert.Contains(t, decoded, "text_diffs")
	assert.Contains(t, decoded, "table_diffs")
	assert.Contains(t, decoded, "semantic")
	assert.Equal(t, "Two pages differ.", decoded["summary"])

	images := decoded["image_diffs"].(map[string]interface{})
	assert.Len(t, images["unmatched_A"], 1)
	assert.Len(t, images["unmatched_B"], 0)

	tables := decoded["table_diffs"].([]interface{})
	note := tables[1].(map[string]interface{})["cell_diffs_sample"].([]interface{})
	require.Len(t, note, 1)
	assert.Equal(t, models.ShapeMismatchNote, note[0].(map[string]interface{})["note"])

	_, err = r.Write(nil, "")
	assert.Error(t, err)
}

func TestTemplateHelpers(t *testing.T) {
	lines := diffLines("--- A:full\n+++ B:full\n@@ -1 +1 @@\n ctx\n-x\n+y\n... (diff truncated) ...\n")
	classes := make([]string, len(lines))
	for i, l := range lines {
		classes[i] = l.Class
	}
	assert.Equal(t, []string{"diff-file", "diff-file", "diff-hunk", "", "diff-del", "diff-add", "diff-trunc"}, classes)
	assert.Nil(t, diffLines(""))

	assert.Equal(t, "added", cellRowClass(models.CellDiff{A: "", B: "x"}))
	assert.Equal(t, "removed", cellRowClass(models.CellDiff{A: "x", B: ""}))
	assert.Equal(t, "changed", cellRowClass(models.CellDiff{A: "x", B: "y"}))

	assert.Equal(t, "a&lt;<ins>b</ins>", string(inlineDiff("a<", "a<b")))

	assert.Equal(t, "bad", similarityClass(models.Float64Ptr(0.79)))
	assert.Equal(t, "warn", similarityClass(models.Float64Ptr(0.8)))
	assert.Equal(t, "warn", similarityClass(nil))
}

func TestDiffLines_DashedContentIsNotHeader(t *testing.T) {
	lines := diffLines("--- A:page1\n+++ B:page1\n@@ -1,2 +1,2 @@\n title\n--- section ---\n+++ section +++\n")
	require.Len(t, lines, 6)

	classes := make([]string, len(lines))
	for i, l := range lines {
		classes[i] = l.Class
	}
	assert.Equal(t, []string{"diff-file", "diff-file", "diff-hunk", "", "diff-del", "diff-add"}, classes)
	assert.Equal(t, "--- section ---", lines[4].Text)
}

func TestDiffLines_UnicodeLineSeparators(t *testing.T) {
	lines := diffLines("--- A:page1\n+++ B:page1\n@@ -1 +1 @@\n-old\u2028+new\u2028")
	require.Len(t, lines, 5)
	assert.Equal(t, diffLine{Text: "-old", Class: "diff-del"}, lines[3])
	assert.Equal(t, diffLine{Text: "+new", Class: "diff-add"}, lines[4])
}

func TestInlineDiff_SemanticCleanup(t *testing.T) {
	assert.Equal(t, "1,000", string(inlineDiff("1,000", "1,000")))
	assert.Equal(t, "<del>cat</del><ins>dog</ins>", string(inlineDiff("cat", "dog")))
}
