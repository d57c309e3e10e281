package orchestrator

import (
	"context"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/logger"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RunRequest describes one end-to-end comparison
type RunRequest struct {
	PathA string
	PathB string
	// HTMLPath overrides the reporter's default output path
	HTMLPath string
	// JSONPath forces a JSON report; empty follows the reporter config
	JSONPath string
	// SideBySidePath requests a PDF pairing the pages of both documents
	SideBySidePath string
}

// RunResult holds the report and the artifacts produced for it
type RunResult struct {
	Report          *models.ComparisonReport
	HTMLPath        string
	JSONPath        string
	SideBySidePath  string
	SideBySidePages int
	CellDiffRows    int
}

// Run extracts, compares, writes the reports and feeds the optional stores.
// Store failures are logged and never fail the run.
func (o *Orchestrator) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	meta := models.ReportMeta{
		ComparisonID: uuid.NewString(),
		FileA:        req.PathA,
		FileB:        req.PathB,
		Pro:          o.analyzer != nil,
	}
	log := o.runLogger(meta.ComparisonID)
	log.Info().Str("file_a", req.PathA).Str("file_b", req.PathB).Msg("Starting comparison")

	if o.history != nil {
		if _, err := o.history.RecordStart(ctx, meta, o.now()); err != nil {
			log.Warn().Err(err).Msg("Failed to record comparison start")
		}
	}

	result := &RunResult{}
	report, err := o.comparePDFs(ctx, log, meta)
	if err == nil {
		result.Report = report
		err = o.writeReports(req, result)
	}
	if err == nil && req.SideBySidePath != "" {
		err = o.writeSideBySide(ctx, req, result)
	}

	if err == nil && o.cellDiffs != nil {
		rows, exportErr := o.cellDiffs.Write(ctx, meta.ComparisonID, report.TableDiffs)
		if exportErr != nil {
			log.Warn().Err(exportErr).Msg("Failed to export cell diffs")
		}
		result.CellDiffRows = rows
	}

	if o.history != nil {
		// The run context may already be cancelled; the outcome is still worth keeping.
		if histErr := o.history.RecordCompletion(context.WithoutCancel(ctx), meta.ComparisonID, report, result.HTMLPath, err); histErr != nil {
			log.Warn().Err(histErr).Msg("Failed to record comparison completion")
		}
	}

	if err != nil {
		log.Error().Err(err).Msg("Comparison failed")
		return nil, err
	}
	return result, nil
}

// runLogger returns the logger of a single run. With file logging enabled the
// run gets its own file under comparisons/<id>/ next to the main log file.
func (o *Orchestrator) runLogger(comparisonID string) zerolog.Logger {
	base := o.logger.With().Str("comparison_id", comparisonID).Logger()
	if o.cfg.LogConfig.LogFile == "" {
		return base
	}

	runLog, err := logger.NewWithComparisonID(o.cfg.LogConfig, comparisonID)
	if err != nil {
		base.Warn().Err(err).Msg("Per-comparison log unavailable, using main logger")
		return base
	}
	return runLog.With().
		Str("component", "Orchestrator").
		Str("comparison_id", comparisonID).
		Logger()
}

func (o *Orchestrator) writeSideBySide(ctx context.Context, req RunRequest, result *RunResult) error {
	merged, err := o.merger.MergeFiles(ctx, req.PathA, req.PathB, req.SideBySidePath)
	if err != nil {
		return common.WrapError(err, "failed to write side-by-side document")
	}
	result.SideBySidePath = merged.OutputPath
	result.SideBySidePages = merged.Pages
	return nil
}

func (o *Orchestrator) writeReports(req RunRequest, result *RunResult) error {
	if o.htmlReporter != nil {
		path, err := o.htmlReporter.Generate(result.Report, req.HTMLPath)
		if err != nil {
			return err
		}
		result.HTMLPath = path
	}

	if o.jsonReporter != nil && (req.JSONPath != "" || o.cfg.ReporterConfig.WriteJSON) {
		path, err := o.jsonReporter.Write(result.Report, req.JSONPath)
		if err != nil {
			return err
		}
		result.JSONPath = path
	}
	return nil
}
