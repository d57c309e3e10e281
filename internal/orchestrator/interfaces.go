package orchestrator

import (
	"context"
	"time"

	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/aleister1102/pdfdiff/internal/visual"
)

// HistoryRecorder keeps a log of comparison runs
type HistoryRecorder interface {
	RecordStart(ctx context.Context, meta models.ReportMeta, startedAt time.Time) (int64, error)
	RecordCompletion(ctx context.Context, comparisonID string, report *models.ComparisonReport, reportPath string, runErr error) error
}

// CellDiffExporter persists sampled table cell differences
type CellDiffExporter interface {
	Write(ctx context.Context, comparisonID string, entries []models.TableDiffEntry) (int, error)
}

// HTMLRenderer writes the HTML rendition of a report and returns its path
type HTMLRenderer interface {
	Generate(report *models.ComparisonReport, outputPath string) (string, error)
}

// JSONWriter writes the JSON rendition of a report and returns its path
type JSONWriter interface {
	Write(report *models.ComparisonReport, path string) (string, error)
}

// PageMerger writes a side-by-side PDF of two documents
type PageMerger interface {
	MergeFiles(ctx context.Context, pathA, pathB, outPath string) (visual.MergeResult, error)
}
