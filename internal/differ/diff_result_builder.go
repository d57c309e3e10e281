package differ

import (
	"strings"

	"github.com/aleister1102/pdfdiff/internal/models"
)

// TextDiffEntryBuilder builds TextDiffEntry objects
type TextDiffEntryBuilder struct {
	entry    models.TextDiffEntry
	maxLines int
}

// NewTextDiffEntryBuilder creates a new entry builder for the given scope
func NewTextDiffEntryBuilder(scope models.TextDiffScope, maxLines int) *TextDiffEntryBuilder {
	return &TextDiffEntryBuilder{
		entry:    models.TextDiffEntry{Scope: scope},
		maxLines: maxLines,
	}
}

// WithPage sets the page number (page scope only)
func (eb *TextDiffEntryBuilder) WithPage(page int) *TextDiffEntryBuilder {
	eb.entry.Page = models.IntPtr(page)
	return eb
}

// WithDiffLines sets the snippet, truncating it to the configured limit
func (eb *TextDiffEntryBuilder) WithDiffLines(lines []string) *TextDiffEntryBuilder {
	limited, truncated := limitLines(lines, eb.maxLines)
	eb.entry.DiffSnippet = strings.Join(limited, "")
	eb.entry.Truncated = truncated
	return eb
}

// WithStats sets line statistics computed on the untruncated texts
func (eb *TextDiffEntryBuilder) WithStats(stats DiffStatistics) *TextDiffEntryBuilder {
	eb.entry.LinesAdded = stats.LinesAdded
	eb.entry.LinesDeleted = stats.LinesDeleted
	return eb
}

// Build creates the final TextDiffEntry
func (eb *TextDiffEntryBuilder) Build() models.TextDiffEntry {
	return eb.entry
}

// limitLines keeps the first floor(max/2) and last max-floor(max/2) lines
// with a marker in between when there are more than max lines.
func limitLines(lines []string, maxLines int) ([]string, bool) {
	if len(lines) <= maxLines {
		return lines, false
	}

	head := maxLines / 2
	tail := maxLines - head

	out := make([]string, 0, maxLines+1)
	out = append(out, lines[:head]...)
	out = append(out, TruncationMarker)
	out = append(out, lines[len(lines)-tail:]...)
	return out, true
}
