package config

// ProConfig defines configuration for semantic comparison and summaries
type ProConfig struct {
	Enabled             bool     `json:"enabled" yaml:"enabled"`
	SimilarityThreshold float64  `json:"similarity_threshold,omitempty" yaml:"similarity_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	EmbeddingDims       int      `json:"embedding_dims,omitempty" yaml:"embedding_dims,omitempty" validate:"omitempty,min=8,max=4096"`
	EmbeddingCacheDir   string   `json:"embedding_cache_dir,omitempty" yaml:"embedding_cache_dir,omitempty"`
	SummaryMaxChars     int      `json:"summary_max_chars,omitempty" yaml:"summary_max_chars,omitempty" validate:"omitempty,min=1"`
	SummaryTextDiffs    int      `json:"summary_text_diffs,omitempty" yaml:"summary_text_diffs,omitempty" validate:"omitempty,min=0"`
	APIKeyEnv           string   `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
	EnvFiles            []string `json:"env_files,omitempty" yaml:"env_files,omitempty" validate:"dive,required"`
}

// NewDefaultProConfig creates default pro configuration
func NewDefaultProConfig() ProConfig {
	return ProConfig{
		Enabled:             false,
		SimilarityThreshold: DefaultProSimilarityThreshold,
		EmbeddingDims:       DefaultProEmbeddingDims,
		EmbeddingCacheDir:   DefaultProEmbeddingCacheDir,
		SummaryMaxChars:     DefaultProSummaryMaxChars,
		SummaryTextDiffs:    DefaultProSummaryTextDiffs,
		APIKeyEnv:           DefaultProAPIKeyEnv,
		EnvFiles:            []string{".env.local", ".env", ".env.example"},
	}
}
