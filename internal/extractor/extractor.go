package extractor

import (
	"context"
	"fmt"
	"os"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/rs/zerolog"
)

// Extractor pulls comparable content out of a document on disk
type Extractor interface {
	ExtractTextPages(path string) ([]models.PageText, error)
	ExtractTables(path string) ([]models.Table, error)
	ExtractImages(path string) ([]models.ImageAsset, error)
	Extract(ctx context.Context, path string) (models.DocumentContent, error)
}

// PDFExtractor extracts page text, tables and embedded images from PDF files
type PDFExtractor struct {
	logger zerolog.Logger
	config config.ExtractorConfig
}

// Extract runs every enabled extraction stage for one document.
// Only an unreadable path is an error. A failing stage is logged and
// contributes an empty list so the comparison still runs.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (models.DocumentContent, error) {
	content := models.DocumentContent{
		Pages:  []models.PageText{},
		Tables: []models.Table{},
		Images: []models.ImageAsset{},
	}

	info, err := os.Stat(path)
	if err != nil {
		return content, common.NewExtractionError(path, "document", err)
	}
	if info.IsDir() {
		return content, common.NewExtractionError(path, "document", fmt.Errorf("path is a directory"))
	}

	log := e.logger.With().Str("path", path).Logger()

	if pages, err := e.ExtractTextPages(path); err != nil {
		log.Warn().Err(err).Msg("Text extraction failed, continuing with no pages")
	} else {
		content.Pages = pages
	}

	if result := common.CheckCancellationWithLog(ctx, log, "extract tables"); result.Cancelled {
		return content, result.Error
	}

	if e.config.ExtractTables {
		if tables, err := e.ExtractTables(path); err != nil {
			log.Warn().Err(err).Msg("Table extraction failed, continuing with no tables")
		} else {
			content.Tables = tables
		}
	}

	if result := common.CheckCancellationWithLog(ctx, log, "extract images"); result.Cancelled {
		return content, result.Error
	}

	if e.config.ExtractImages {
		if images, err := e.ExtractImages(path); err != nil {
			log.Warn().Err(err).Msg("Image extraction failed, continuing with no images")
		} else {
			content.Images = images
		}
	}

	log.Info().
		Int("pages", len(content.Pages)).
		Int("tables", len(content.Tables)).
		Int("images", len(content.Images)).
		Msg("Extracted document content")

	return content, nil
}

// recoverStage turns a panic from a PDF parser into an extraction error
func recoverStage(path, stage string, err *error) {
	if r := recover(); r != nil {
		*err = common.NewExtractionError(path, stage, fmt.Errorf("parser panic: %v", r))
	}
}
