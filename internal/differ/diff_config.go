package differ

const (
	// DefaultMaxDiffLines bounds the size of a text diff snippet.
	DefaultMaxDiffLines = 60
	// MinMaxDiffLines keeps at least one head and one tail line after truncation.
	MinMaxDiffLines = 2
	// DefaultContextLines is the unified diff context size.
	DefaultContextLines = 3
	// DefaultSampleLimit caps cell diffs reported per table pair.
	DefaultSampleLimit = 30
	// DefaultDistanceThreshold is the informational Hamming distance threshold.
	DefaultDistanceThreshold = 10

	// TruncationMarker separates the head and tail of a truncated diff.
	TruncationMarker = "... (diff truncated) ...\n"
)

// DiffConfig holds configuration for character level diffing.
// Line statistics ignore it.
type DiffConfig struct {
	EnableSemanticCleanup bool
	// EnableLineBasedDiff runs a line-level speedup pass first on long texts
	EnableLineBasedDiff bool
}

// DefaultDiffConfig returns default configuration
func DefaultDiffConfig() DiffConfig {
	return DiffConfig{
		EnableSemanticCleanup: true,
		EnableLineBasedDiff:   true,
	}
}

// TextDifferConfig holds configuration for page text comparison
type TextDifferConfig struct {
	MaxDiffLines     int
	ContextLines     int
	NormalizeUnicode bool
}

// DefaultTextDifferConfig returns default configuration
func DefaultTextDifferConfig() TextDifferConfig {
	return TextDifferConfig{
		MaxDiffLines:     DefaultMaxDiffLines,
		ContextLines:     DefaultContextLines,
		NormalizeUnicode: true,
	}
}

// effectiveMaxLines maps non-positive limits to the default and enforces the floor.
func (c TextDifferConfig) effectiveMaxLines() int {
	if c.MaxDiffLines <= 0 {
		return DefaultMaxDiffLines
	}
	if c.MaxDiffLines < MinMaxDiffLines {
		return MinMaxDiffLines
	}
	return c.MaxDiffLines
}

func (c TextDifferConfig) effectiveContextLines() int {
	if c.ContextLines < 0 {
		return DefaultContextLines
	}
	return c.ContextLines
}

// TableDifferConfig holds configuration for table comparison
type TableDifferConfig struct {
	SampleLimit int
}

// DefaultTableDifferConfig returns default configuration
func DefaultTableDifferConfig() TableDifferConfig {
	return TableDifferConfig{
		SampleLimit: DefaultSampleLimit,
	}
}

// ImageMatcherConfig holds configuration for image matching
type ImageMatcherConfig struct {
	// DistanceThreshold is recorded on results and used for logging only.
	// Matches are never rejected for exceeding it.
	DistanceThreshold int
}

// DefaultImageMatcherConfig returns default configuration
func DefaultImageMatcherConfig() ImageMatcherConfig {
	return ImageMatcherConfig{
		DistanceThreshold: DefaultDistanceThreshold,
	}
}
