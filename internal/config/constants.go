package config

const (
	// ConfigPathEnvVar overrides the config file location.
	ConfigPathEnvVar = "PDFDIFF_CONFIG_PATH"

	// Text Diff Defaults
	DefaultTextMaxDiffLines     = 60
	DefaultTextContextLines     = 3
	DefaultTextNormalizeUnicode = true

	// Table Diff Defaults
	DefaultTableSampleLimit = 30

	// Image Match Defaults
	DefaultImageDistanceThreshold = 10

	// Extractor Defaults
	DefaultExtractorMinTableColumns = 2
	DefaultExtractorColumnGap       = 12.0
	DefaultExtractorThumbnailSize   = 256

	// Reporter Defaults
	DefaultReporterOutputDir    = "reports"
	DefaultReporterHTMLFileName = "report.html"
	DefaultReporterJSONFileName = "report.json"
	DefaultReporterTitle        = "PDF Comparison Report"

	// Side-by-side Defaults
	DefaultVisualMaxPages = 0
	DefaultVisualBorder   = false

	// Storage Defaults
	DefaultStorageParquetBasePath  = "database"
	DefaultStorageCompressionCodec = "zstd"
	DefaultStorageHistoryDBPath    = "database/history/comparison_history.db"

	// Pro Defaults
	DefaultProSimilarityThreshold = 0.85
	DefaultProEmbeddingDims       = 384
	DefaultProEmbeddingCacheDir   = ".cache/embeddings"
	DefaultProSummaryMaxChars     = 280
	DefaultProSummaryTextDiffs    = 3
	DefaultProAPIKeyEnv           = "GOOGLE_API_KEY"
)
