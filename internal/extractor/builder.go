package extractor

import (
	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/rs/zerolog"
)

// PDFExtractorBuilder provides a fluent interface for creating PDFExtractor
type PDFExtractorBuilder struct {
	logger zerolog.Logger
	config config.ExtractorConfig
}

// NewPDFExtractorBuilder creates a new builder
func NewPDFExtractorBuilder(logger zerolog.Logger) *PDFExtractorBuilder {
	return &PDFExtractorBuilder{
		logger: logger.With().Str("component", "PDFExtractor").Logger(),
		config: config.NewDefaultExtractorConfig(),
	}
}

// WithConfig sets the extractor configuration
func (b *PDFExtractorBuilder) WithConfig(cfg config.ExtractorConfig) *PDFExtractorBuilder {
	b.config = cfg
	return b
}

// Build creates a new PDFExtractor instance
func (b *PDFExtractorBuilder) Build() (*PDFExtractor, error) {
	if b.config.ColumnGap < 0 {
		return nil, common.NewValidationError("column_gap", b.config.ColumnGap, "column gap cannot be negative")
	}
	if b.config.ColumnGap == 0 {
		b.config.ColumnGap = config.DefaultExtractorColumnGap
	}
	if b.config.MinTableColumns < 2 {
		b.config.MinTableColumns = config.DefaultExtractorMinTableColumns
	}
	if b.config.ThumbnailSize <= 0 {
		b.config.ThumbnailSize = config.DefaultExtractorThumbnailSize
	}

	return &PDFExtractor{
		logger: b.logger,
		config: b.config,
	}, nil
}
