package differ

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffProcessor handles the core diffing logic
type DiffProcessor struct {
	dmp    *diffmatchpatch.DiffMatchPatch
	config DiffConfig
}

// NewDiffProcessor creates a new diff processor
func NewDiffProcessor(config DiffConfig) *DiffProcessor {
	return &DiffProcessor{
		dmp:    diffmatchpatch.New(),
		config: config,
	}
}

// ProcessDiff generates a character level diff between two strings
func (dp *DiffProcessor) ProcessDiff(text1, text2 string) []diffmatchpatch.Diff {
	diffs := dp.dmp.DiffMain(text1, text2, dp.config.EnableLineBasedDiff)

	if dp.config.EnableSemanticCleanup {
		diffs = dp.dmp.DiffCleanupSemantic(diffs)
	}

	return diffs
}

// ProcessLineDiff generates a diff where every segment is made of whole lines
func (dp *DiffProcessor) ProcessLineDiff(text1, text2 string) []diffmatchpatch.Diff {
	chars1, chars2, lines := dp.dmp.DiffLinesToChars(text1, text2)
	diffs := dp.dmp.DiffMain(chars1, chars2, false)
	return dp.dmp.DiffCharsToLines(diffs, lines)
}

// DiffStatistics holds diff calculation results
type DiffStatistics struct {
	LinesAdded   int
	LinesDeleted int
	IsIdentical  bool
}

// DiffStatsCalculator calculates statistics from diff results
type DiffStatsCalculator struct{}

// NewDiffStatsCalculator creates a new diff stats calculator
func NewDiffStatsCalculator() *DiffStatsCalculator {
	return &DiffStatsCalculator{}
}

// CalculateStats counts inserted and deleted lines in a line-mode diff
func (dsc *DiffStatsCalculator) CalculateStats(diffs []diffmatchpatch.Diff) DiffStatistics {
	stats := DiffStatistics{IsIdentical: true}

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			stats.LinesAdded += countLines(diff.Text)
			stats.IsIdentical = false
		case diffmatchpatch.DiffDelete:
			stats.LinesDeleted += countLines(diff.Text)
			stats.IsIdentical = false
		}
	}

	return stats
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
