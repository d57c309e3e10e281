package config

// TextDiffConfig defines configuration for page text diffing
type TextDiffConfig struct {
	ContextLines     int  `json:"context_lines" yaml:"context_lines" validate:"min=0"`
	MaxDiffLines     int  `json:"max_diff_lines,omitempty" yaml:"max_diff_lines,omitempty"`
	NormalizeUnicode bool `json:"normalize_unicode" yaml:"normalize_unicode"`
}

// NewDefaultTextDiffConfig creates default text diff configuration
func NewDefaultTextDiffConfig() TextDiffConfig {
	return TextDiffConfig{
		ContextLines:     DefaultTextContextLines,
		MaxDiffLines:     DefaultTextMaxDiffLines,
		NormalizeUnicode: DefaultTextNormalizeUnicode,
	}
}

// TableDiffConfig defines configuration for table diffing
type TableDiffConfig struct {
	SampleLimit int `json:"sample_limit,omitempty" yaml:"sample_limit,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultTableDiffConfig creates default table diff configuration
func NewDefaultTableDiffConfig() TableDiffConfig {
	return TableDiffConfig{
		SampleLimit: DefaultTableSampleLimit,
	}
}

// ImageMatchConfig defines configuration for image matching
type ImageMatchConfig struct {
	DistanceThreshold int `json:"distance_threshold" yaml:"distance_threshold" validate:"min=0,max=64"`
}

// NewDefaultImageMatchConfig creates default image match configuration
func NewDefaultImageMatchConfig() ImageMatchConfig {
	return ImageMatchConfig{
		DistanceThreshold: DefaultImageDistanceThreshold,
	}
}
