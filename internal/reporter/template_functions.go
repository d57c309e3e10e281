package reporter

import (
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/aleister1102/pdfdiff/internal/differ"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// badSimilarity separates "bad" from "warn" semantic flags in the report
const badSimilarity = 0.8

var cellDiffProcessor = differ.NewDiffProcessor(differ.DiffConfig{EnableSemanticCleanup: true})

// GetCommonTemplateFunctions returns common functions for templates
func GetCommonTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		"json": func(v interface{}) (template.JS, error) {
			data, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(data), nil
		},
		"formatTime": func(t time.Time, layout string) string {
			if t.IsZero() {
				return "N/A"
			}
			return t.Format(layout)
		},
		"inc": func(i int) int {
			return i + 1
		},
		"derefInt": func(p *int) string {
			if p == nil {
				return ""
			}
			return fmt.Sprintf("%d", *p)
		},
	}
}

// GetDiffTemplateFunctions returns functions specific to comparison reports
func GetDiffTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		"diffLines":       diffLines,
		"cellRowClass":    cellRowClass,
		"inlineDiff":      inlineDiff,
		"similarityClass": similarityClass,
		"thumbURL":        thumbURL,
		"formatSimilarity": func(sim *float64) string {
			if sim == nil {
				return ""
			}
			return fmt.Sprintf("%.3f", *sim)
		},
	}
}

// diffLine is one line of a unified diff snippet with its CSS class
type diffLine struct {
	Text  string
	Class string
}

// diffLines splits a unified diff snippet into classified lines.
// Only the two leading lines can be file headers.
func diffLines(snippet string) []diffLine {
	if snippet == "" {
		return nil
	}
	raw := differ.SplitLinesKeepEnds(snippet)
	lines := make([]diffLine, 0, len(raw))
	for i, line := range raw {
		text := differ.TrimLineBreak(line)
		class := diffLineClass(text)
		if i < 2 && isFileHeader(text) {
			class = "diff-file"
		}
		lines = append(lines, diffLine{Text: text, Class: class})
	}
	return lines
}

func isFileHeader(line string) bool {
	return strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ")
}

func diffLineClass(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return "diff-hunk"
	case strings.HasPrefix(line, "+"):
		return "diff-add"
	case strings.HasPrefix(line, "-"):
		return "diff-del"
	case strings.HasPrefix(line, "..."):
		return "diff-trunc"
	default:
		return ""
	}
}

// cellRowClass marks a cell diff as added, removed or changed
func cellRowClass(cd models.CellDiff) string {
	switch {
	case cd.A == "" && cd.B != "":
		return "added"
	case cd.B == "" && cd.A != "":
		return "removed"
	default:
		return "changed"
	}
}

// inlineDiff renders a character-level diff of two cell values
func inlineDiff(a, b string) template.HTML {
	diffs := cellDiffProcessor.ProcessDiff(a, b)

	var sb strings.Builder
	for _, d := range diffs {
		text := html.EscapeString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sb.WriteString("<ins>" + text + "</ins>")
		case diffmatchpatch.DiffDelete:
			sb.WriteString("<del>" + text + "</del>")
		default:
			sb.WriteString(text)
		}
	}
	return template.HTML(sb.String())
}

func similarityClass(sim *float64) string {
	if sim != nil && *sim < badSimilarity {
		return "bad"
	}
	return "warn"
}

// thumbURL wraps a base64 PNG thumbnail as a data URL trusted by html/template
func thumbURL(b64 string) template.URL {
	return template.URL("data:image/png;base64," + b64)
}
