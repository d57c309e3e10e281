package config

// VisualConfig defines the side-by-side PDF output
type VisualConfig struct {
	// MaxPages caps the merged page pairs, 0 keeps every common page
	MaxPages int  `json:"max_pages" yaml:"max_pages" validate:"min=0"`
	Border   bool `json:"border" yaml:"border"`
}

// NewDefaultVisualConfig creates default side-by-side configuration
func NewDefaultVisualConfig() VisualConfig {
	return VisualConfig{
		MaxPages: DefaultVisualMaxPages,
		Border:   DefaultVisualBorder,
	}
}
