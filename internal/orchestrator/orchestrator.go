package orchestrator

import (
	"context"
	"io"
	"time"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/aleister1102/pdfdiff/internal/differ"
	"github.com/aleister1102/pdfdiff/internal/extractor"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/aleister1102/pdfdiff/internal/semantic"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Orchestrator runs the text, table and image comparisons of two documents
// and assembles the report.
type Orchestrator struct {
	cfg    *config.GlobalConfig
	logger zerolog.Logger

	extractor    extractor.Extractor
	textDiffer   *differ.TextDiffer
	tableDiffer  *differ.TableDiffer
	imageMatcher *differ.ImageMatcher

	analyzer   *semantic.Analyzer
	summarizer semantic.Summarizer

	history      HistoryRecorder
	cellDiffs    CellDiffExporter
	htmlReporter HTMLRenderer
	jsonReporter JSONWriter
	merger       PageMerger

	closers []io.Closer
	now     func() time.Time
}

// Compare diffs two already extracted documents.
// Errors are limited to invalid page numbers and context cancellation;
// empty inputs yield empty report sections.
func (o *Orchestrator) Compare(ctx context.Context, meta models.ReportMeta, a, b models.DocumentContent) (*models.ComparisonReport, error) {
	if meta.ComparisonID == "" {
		meta.ComparisonID = uuid.NewString()
	}
	return o.compare(ctx, o.logger.With().Str("comparison_id", meta.ComparisonID).Logger(), meta, a, b)
}

func (o *Orchestrator) compare(ctx context.Context, log zerolog.Logger, meta models.ReportMeta, a, b models.DocumentContent) (*models.ComparisonReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	meta.GeneratedAt = o.now()
	meta.Pro = o.analyzer != nil

	var (
		textDiffs  []models.TextDiffEntry
		tableDiffs []models.TableDiffEntry
		imageDiffs models.ImageMatchResult
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		textDiffs, err = o.textDiffer.Compare(a.Pages, b.Pages)
		return common.WrapError(err, "text comparison failed")
	})
	g.Go(func() error {
		var err error
		tableDiffs, err = o.tableDiffer.Compare(a.Tables, b.Tables)
		return common.WrapError(err, "table comparison failed")
	})
	g.Go(func() error {
		imageDiffs = o.imageMatcher.Match(a.Images, b.Images)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Comparison aborted")
		return nil, err
	}
	if result := common.CheckCancellationWithLog(ctx, log, "compare"); result.Cancelled {
		return nil, result.Error
	}

	if textDiffs == nil {
		textDiffs = []models.TextDiffEntry{}
	}
	if tableDiffs == nil {
		tableDiffs = []models.TableDiffEntry{}
	}

	report := &models.ComparisonReport{
		Meta:       meta,
		TextDiffs:  textDiffs,
		TableDiffs: tableDiffs,
		ImageDiffs: imageDiffs,
	}

	if o.analyzer != nil {
		o.applyProLayer(report, a.Pages, b.Pages, log)
	}

	ov := report.Overview()
	log.Info().
		Int("text_entries", ov.TextDiffs).
		Int("changed_pages", ov.ChangedPages).
		Int("table_entries", ov.Tables).
		Int("cell_diffs", ov.CellDiffs).
		Int("image_matches", ov.ImageMatches).
		Int("unmatched_a", ov.UnmatchedA).
		Int("unmatched_b", ov.UnmatchedB).
		Bool("pro", meta.Pro).
		Msg("Comparison finished")

	return report, nil
}

// applyProLayer adds semantic flags and the summary. Failures only cost the flags.
func (o *Orchestrator) applyProLayer(report *models.ComparisonReport, pagesA, pagesB []models.PageText, log zerolog.Logger) {
	flags, err := o.analyzer.Flags(pagesA, pagesB)
	if err != nil {
		log.Warn().Err(err).Msg("Semantic analysis failed, report has no semantic flags")
		flags = []models.SemanticFlag{}
	}
	report.Semantic = flags

	input, err := semantic.BuildSummaryInput(flags, report.TextDiffs, o.cfg.ProConfig.SummaryTextDiffs)
	if err != nil {
		log.Warn().Err(err).Msg("Could not build summary input")
		report.Summary = semantic.NoSummary
		return
	}
	report.Summary = o.summarizer.Summarize(input)
}

// ComparePDFs extracts both documents and compares them
func (o *Orchestrator) ComparePDFs(ctx context.Context, pathA, pathB string) (*models.ComparisonReport, error) {
	meta := models.ReportMeta{ComparisonID: uuid.NewString(), FileA: pathA, FileB: pathB}
	return o.comparePDFs(ctx, o.logger.With().Str("comparison_id", meta.ComparisonID).Logger(), meta)
}

func (o *Orchestrator) comparePDFs(ctx context.Context, log zerolog.Logger, meta models.ReportMeta) (*models.ComparisonReport, error) {
	var a, b models.DocumentContent

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = o.extractor.Extract(gctx, meta.FileA)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = o.extractor.Extract(gctx, meta.FileB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return o.compare(ctx, log, meta, a, b)
}

// Close releases stores opened by the builder
func (o *Orchestrator) Close() error {
	var collector common.ErrorCollector
	for i := len(o.closers) - 1; i >= 0; i-- {
		collector.AddWithContext(o.closers[i].Close(), "failed to close store")
	}
	o.closers = nil
	return collector.Error()
}
