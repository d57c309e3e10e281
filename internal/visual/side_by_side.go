package visual

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/extractor"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog"
)

// maxInputSize bounds how much of each document is loaded for merging
const maxInputSize = 512 * 1024 * 1024

// MergeConfig controls the side-by-side layout
type MergeConfig struct {
	// MaxPages caps the number of page pairs, 0 keeps every common page
	MaxPages int
	// Border draws a frame around each half
	Border bool
}

// MergeResult describes a written side-by-side document
type MergeResult struct {
	OutputPath string
	Pages      int
	PagesA     int
	PagesB     int
}

// SideBySideMerger writes a PDF whose page i shows page i of the first
// document on the left and page i of the second on the right.
// Only pages both documents have are merged.
type SideBySideMerger struct {
	logger      zerolog.Logger
	config      MergeConfig
	fileManager *common.FileManager
}

// NewSideBySideMerger creates a merger
func NewSideBySideMerger(logger zerolog.Logger, config MergeConfig) *SideBySideMerger {
	return &SideBySideMerger{
		logger:      logger.With().Str("component", "SideBySideMerger").Logger(),
		config:      config,
		fileManager: common.NewFileManager(logger),
	}
}

// MergeFiles merges the documents at pathA and pathB into outPath
func (m *SideBySideMerger) MergeFiles(ctx context.Context, pathA, pathB, outPath string) (MergeResult, error) {
	if outPath == "" {
		return MergeResult{}, common.NewValidationError("output_path", outPath, "output path is required")
	}

	dataA, err := m.fileManager.ReadFile(pathA, common.FileReadOptions{MaxSize: maxInputSize})
	if err != nil {
		return MergeResult{}, err
	}
	dataB, err := m.fileManager.ReadFile(pathB, common.FileReadOptions{MaxSize: maxInputSize})
	if err != nil {
		return MergeResult{}, err
	}

	var out bytes.Buffer
	result, err := m.Merge(ctx, bytes.NewReader(dataA), bytes.NewReader(dataB), &out)
	if err != nil {
		return MergeResult{}, err
	}

	if err := m.fileManager.WriteFile(outPath, out.Bytes(), common.DefaultFileWriteOptions()); err != nil {
		return MergeResult{}, err
	}
	result.OutputPath = outPath

	m.logger.Info().
		Str("path", outPath).
		Int("pages", result.Pages).
		Int("pages_a", result.PagesA).
		Int("pages_b", result.PagesB).
		Msg("Side-by-side document written")
	return result, nil
}

// Merge reads both documents and writes the side-by-side PDF to w
func (m *SideBySideMerger) Merge(ctx context.Context, a, b io.ReadSeeker, w io.Writer) (MergeResult, error) {
	pagesA, err := pageCount(a)
	if err != nil {
		return MergeResult{}, common.WrapError(err, "failed to read first document")
	}
	pagesB, err := pageCount(b)
	if err != nil {
		return MergeResult{}, common.WrapError(err, "failed to read second document")
	}

	n := m.pagePairs(pagesA, pagesB)
	if n == 0 {
		return MergeResult{}, common.NewValidationError("pages", 0, "documents have no pages to merge")
	}
	result := MergeResult{Pages: n, PagesA: pagesA, PagesB: pagesB}

	if err := ctx.Err(); err != nil {
		return MergeResult{}, err
	}

	trimmedA, err := trim(a, n)
	if err != nil {
		return MergeResult{}, common.WrapError(err, "failed to select pages of first document")
	}
	trimmedB, err := trim(b, n)
	if err != nil {
		return MergeResult{}, common.WrapError(err, "failed to select pages of second document")
	}

	// Interleave to A1 B1 A2 B2 ... so a 1x2 grid pairs matching pages.
	var zipped bytes.Buffer
	if err := api.MergeCreateZip(bytes.NewReader(trimmedA), bytes.NewReader(trimmedB), &zipped, extractor.NewPDFConfiguration()); err != nil {
		return MergeResult{}, common.WrapError(err, "failed to interleave pages")
	}

	if err := ctx.Err(); err != nil {
		return MergeResult{}, err
	}

	conf := extractor.NewPDFConfiguration()
	grid, err := api.PDFGridConfig(1, 2, m.gridDescription(), conf)
	if err != nil {
		return MergeResult{}, common.WrapError(err, "invalid grid configuration")
	}
	if err := api.NUp(bytes.NewReader(zipped.Bytes()), w, nil, nil, grid, conf); err != nil {
		return MergeResult{}, common.WrapError(err, "failed to lay out page pairs")
	}

	return result, nil
}

func (m *SideBySideMerger) pagePairs(pagesA, pagesB int) int {
	n := min(pagesA, pagesB)
	if m.config.MaxPages > 0 {
		n = min(n, m.config.MaxPages)
	}
	return n
}

func (m *SideBySideMerger) gridDescription() string {
	border := "off"
	if m.config.Border {
		border = "on"
	}
	return fmt.Sprintf("border:%s, margin:0", border)
}

func pageCount(rs io.ReadSeeker) (int, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return api.PageCount(rs, extractor.NewPDFConfiguration())
}

// trim keeps the first n pages
func trim(rs io.ReadSeeker, n int) ([]byte, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	selection := "1"
	if n > 1 {
		selection = fmt.Sprintf("1-%d", n)
	}
	var buf bytes.Buffer
	if err := api.Trim(rs, &buf, []string{selection}, extractor.NewPDFConfiguration()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
