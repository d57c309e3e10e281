package differ

import (
	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/imagehash"
	"github.com/rs/zerolog"
)

// TextDifferBuilder provides a fluent interface for creating TextDiffer
type TextDifferBuilder struct {
	logger zerolog.Logger
	config TextDifferConfig
}

// NewTextDifferBuilder creates a new builder
func NewTextDifferBuilder(logger zerolog.Logger) *TextDifferBuilder {
	return &TextDifferBuilder{
		logger: logger.With().Str("component", "TextDiffer").Logger(),
		config: DefaultTextDifferConfig(),
	}
}

// WithConfig sets the text differ configuration
func (b *TextDifferBuilder) WithConfig(config TextDifferConfig) *TextDifferBuilder {
	b.config = config
	return b
}

// Build creates a new TextDiffer instance
func (b *TextDifferBuilder) Build() (*TextDiffer, error) {
	return &TextDiffer{
		logger:          b.logger,
		config:          b.config,
		processor:       NewDiffProcessor(DefaultDiffConfig()),
		statsCalculator: NewDiffStatsCalculator(),
		pageValidator:   NewPageNumberValidator(),
	}, nil
}

// TableDifferBuilder provides a fluent interface for creating TableDiffer
type TableDifferBuilder struct {
	logger zerolog.Logger
	config TableDifferConfig
}

// NewTableDifferBuilder creates a new builder
func NewTableDifferBuilder(logger zerolog.Logger) *TableDifferBuilder {
	return &TableDifferBuilder{
		logger: logger.With().Str("component", "TableDiffer").Logger(),
		config: DefaultTableDifferConfig(),
	}
}

// WithConfig sets the table differ configuration
func (b *TableDifferBuilder) WithConfig(config TableDifferConfig) *TableDifferBuilder {
	b.config = config
	return b
}

// Build creates a new TableDiffer instance
func (b *TableDifferBuilder) Build() (*TableDiffer, error) {
	return &TableDiffer{
		logger:        b.logger,
		config:        b.config,
		mapper:        NewTableMapper(),
		pageValidator: NewPageNumberValidator(),
	}, nil
}

// ImageMatcherBuilder provides a fluent interface for creating ImageMatcher
type ImageMatcherBuilder struct {
	logger zerolog.Logger
	config ImageMatcherConfig
	hasher imagehash.Hasher
}

// NewImageMatcherBuilder creates a new builder
func NewImageMatcherBuilder(logger zerolog.Logger) *ImageMatcherBuilder {
	return &ImageMatcherBuilder{
		logger: logger.With().Str("component", "ImageMatcher").Logger(),
		config: DefaultImageMatcherConfig(),
	}
}

// WithConfig sets the image matcher configuration
func (b *ImageMatcherBuilder) WithConfig(config ImageMatcherConfig) *ImageMatcherBuilder {
	b.config = config
	return b
}

// WithHasher sets the hasher used for image descriptors
func (b *ImageMatcherBuilder) WithHasher(hasher imagehash.Hasher) *ImageMatcherBuilder {
	b.hasher = hasher
	return b
}

// Build creates a new ImageMatcher instance
func (b *ImageMatcherBuilder) Build() (*ImageMatcher, error) {
	if b.config.DistanceThreshold < 0 {
		return nil, common.NewValidationError("distance_threshold", b.config.DistanceThreshold, "distance threshold cannot be negative")
	}

	hasher := b.hasher
	if hasher == nil {
		hasher = imagehash.NewPerceptualHasher()
	}

	return &ImageMatcher{
		logger: b.logger,
		config: b.config,
		hasher: hasher,
	}, nil
}
