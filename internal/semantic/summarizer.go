package semantic

import (
	"encoding/json"
	"strings"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/models"
)

const (
	// DefaultSummaryMaxChars is how much of the summary input is kept
	DefaultSummaryMaxChars = 280
	// DefaultSummaryTextDiffs is how many text diff entries feed the summary
	DefaultSummaryTextDiffs = 3
	// NoSummary is returned when there is nothing to summarize
	NoSummary = "No summary available."
)

// Summarizer condenses a comparison into one short paragraph
type Summarizer interface {
	Summarize(input string) string
}

// summaryInput is the document handed to a Summarizer
type summaryInput struct {
	Semantic []models.SemanticFlag  `json:"semantic"`
	Text     []models.TextDiffEntry `json:"text"`
}

// BuildSummaryInput serializes the semantic flags and the first textDiffs text entries
func BuildSummaryInput(flags []models.SemanticFlag, textDiffs []models.TextDiffEntry, limit int) (string, error) {
	if limit < 0 {
		limit = DefaultSummaryTextDiffs
	}
	if len(textDiffs) > limit {
		textDiffs = textDiffs[:limit]
	}
	if flags == nil {
		flags = []models.SemanticFlag{}
	}
	if textDiffs == nil {
		textDiffs = []models.TextDiffEntry{}
	}

	data, err := json.Marshal(summaryInput{Semantic: flags, Text: textDiffs})
	if err != nil {
		return "", common.WrapError(err, "failed to encode summary input")
	}
	return string(data), nil
}

// HeuristicSummarizer keeps the leading characters of the input on one line
type HeuristicSummarizer struct {
	maxChars int
}

// NewHeuristicSummarizer creates a summarizer keeping at most maxChars characters
func NewHeuristicSummarizer(maxChars int) *HeuristicSummarizer {
	if maxChars <= 0 {
		maxChars = DefaultSummaryMaxChars
	}
	return &HeuristicSummarizer{maxChars: maxChars}
}

// Summarize returns the first maxChars characters with newlines flattened,
// followed by "..." when the input was longer
func (s *HeuristicSummarizer) Summarize(input string) string {
	runes := []rune(input)
	truncated := len(runes) > s.maxChars
	if truncated {
		runes = runes[:s.maxChars]
	}

	snippet := strings.ReplaceAll(string(runes), "\n", " ")
	if truncated {
		snippet += "..."
	}
	if snippet == "" {
		return NoSummary
	}
	return snippet
}
