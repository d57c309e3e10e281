package config

// ExtractorConfig defines configuration for PDF content extraction
type ExtractorConfig struct {
	ExtractImages   bool    `json:"extract_images" yaml:"extract_images"`
	ExtractTables   bool    `json:"extract_tables" yaml:"extract_tables"`
	ColumnGap       float64 `json:"column_gap,omitempty" yaml:"column_gap,omitempty" validate:"omitempty,gt=0"`
	MinTableColumns int     `json:"min_table_columns,omitempty" yaml:"min_table_columns,omitempty" validate:"omitempty,min=2"`
	ThumbnailSize   int     `json:"thumbnail_size,omitempty" yaml:"thumbnail_size,omitempty" validate:"omitempty,min=16,max=2048"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		ExtractImages:   true,
		ExtractTables:   true,
		ColumnGap:       DefaultExtractorColumnGap,
		MinTableColumns: DefaultExtractorMinTableColumns,
		ThumbnailSize:   DefaultExtractorThumbnailSize,
	}
}
