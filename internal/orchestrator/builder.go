package orchestrator

import (
	"io"
	"time"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/aleister1102/pdfdiff/internal/datastore"
	"github.com/aleister1102/pdfdiff/internal/differ"
	"github.com/aleister1102/pdfdiff/internal/extractor"
	"github.com/aleister1102/pdfdiff/internal/reporter"
	"github.com/aleister1102/pdfdiff/internal/semantic"
	"github.com/aleister1102/pdfdiff/internal/visual"
	"github.com/rs/zerolog"
)

// OrchestratorBuilder provides a fluent interface for creating Orchestrator
type OrchestratorBuilder struct {
	logger       zerolog.Logger
	cfg          *config.GlobalConfig
	extractor    extractor.Extractor
	embedder     semantic.Embedder
	summarizer   semantic.Summarizer
	history      HistoryRecorder
	cellDiffs    CellDiffExporter
	htmlReporter HTMLRenderer
	jsonReporter JSONWriter
	merger       PageMerger
	noReports    bool
	now          func() time.Time
}

// NewOrchestratorBuilder creates a new builder
func NewOrchestratorBuilder(logger zerolog.Logger) *OrchestratorBuilder {
	return &OrchestratorBuilder{
		logger: logger.With().Str("component", "Orchestrator").Logger(),
		now:    time.Now,
	}
}

// WithConfig sets the global configuration
func (b *OrchestratorBuilder) WithConfig(cfg *config.GlobalConfig) *OrchestratorBuilder {
	b.cfg = cfg
	return b
}

// WithExtractor replaces the PDF extractor
func (b *OrchestratorBuilder) WithExtractor(e extractor.Extractor) *OrchestratorBuilder {
	b.extractor = e
	return b
}

// WithEmbedder replaces the embedder used in pro mode
func (b *OrchestratorBuilder) WithEmbedder(e semantic.Embedder) *OrchestratorBuilder {
	b.embedder = e
	return b
}

// WithSummarizer replaces the summarizer used in pro mode
func (b *OrchestratorBuilder) WithSummarizer(s semantic.Summarizer) *OrchestratorBuilder {
	b.summarizer = s
	return b
}

// WithHistory sets the history recorder instead of opening one from config
func (b *OrchestratorBuilder) WithHistory(h HistoryRecorder) *OrchestratorBuilder {
	b.history = h
	return b
}

// WithCellDiffExporter sets the exporter instead of opening one from config
func (b *OrchestratorBuilder) WithCellDiffExporter(x CellDiffExporter) *OrchestratorBuilder {
	b.cellDiffs = x
	return b
}

// WithReporters sets the report writers instead of creating them from config
func (b *OrchestratorBuilder) WithReporters(html HTMLRenderer, json JSONWriter) *OrchestratorBuilder {
	b.htmlReporter = html
	b.jsonReporter = json
	return b
}

// WithPageMerger replaces the side-by-side merger
func (b *OrchestratorBuilder) WithPageMerger(m PageMerger) *OrchestratorBuilder {
	b.merger = m
	return b
}

// WithoutReports disables report writing in Run
func (b *OrchestratorBuilder) WithoutReports() *OrchestratorBuilder {
	b.noReports = true
	return b
}

// WithClock sets the time source for report timestamps
func (b *OrchestratorBuilder) WithClock(now func() time.Time) *OrchestratorBuilder {
	b.now = now
	return b
}

// Build creates a new Orchestrator instance
func (b *OrchestratorBuilder) Build() (*Orchestrator, error) {
	if b.cfg == nil {
		return nil, common.NewValidationError("config", nil, "global config cannot be nil")
	}
	cfg := b.cfg

	o := &Orchestrator{
		cfg:          cfg,
		logger:       b.logger,
		extractor:    b.extractor,
		history:      b.history,
		cellDiffs:    b.cellDiffs,
		htmlReporter: b.htmlReporter,
		jsonReporter: b.jsonReporter,
		merger:       b.merger,
		now:          b.now,
	}

	if err := b.buildDiffers(o); err != nil {
		return nil, err
	}

	if o.extractor == nil {
		ext, err := extractor.NewPDFExtractorBuilder(b.logger).WithConfig(cfg.ExtractorConfig).Build()
		if err != nil {
			return nil, common.WrapError(err, "failed to build extractor")
		}
		o.extractor = ext
	}

	if o.merger == nil {
		o.merger = visual.NewSideBySideMerger(b.logger, visual.MergeConfig{
			MaxPages: cfg.VisualConfig.MaxPages,
			Border:   cfg.VisualConfig.Border,
		})
	}

	if err := b.buildProLayer(o); err != nil {
		_ = o.Close()
		return nil, err
	}
	if err := b.buildStores(o); err != nil {
		_ = o.Close()
		return nil, err
	}
	if err := b.buildReporters(o); err != nil {
		_ = o.Close()
		return nil, err
	}

	return o, nil
}

func (b *OrchestratorBuilder) buildDiffers(o *Orchestrator) error {
	var err error
	o.textDiffer, err = differ.NewTextDifferBuilder(b.logger).
		WithConfig(differ.TextDifferConfig{
			MaxDiffLines:     b.cfg.TextDiffConfig.MaxDiffLines,
			ContextLines:     b.cfg.TextDiffConfig.ContextLines,
			NormalizeUnicode: b.cfg.TextDiffConfig.NormalizeUnicode,
		}).
		Build()
	if err != nil {
		return common.WrapError(err, "failed to build text differ")
	}

	o.tableDiffer, err = differ.NewTableDifferBuilder(b.logger).
		WithConfig(differ.TableDifferConfig{SampleLimit: b.cfg.TableDiffConfig.SampleLimit}).
		Build()
	if err != nil {
		return common.WrapError(err, "failed to build table differ")
	}

	o.imageMatcher, err = differ.NewImageMatcherBuilder(b.logger).
		WithConfig(differ.ImageMatcherConfig{DistanceThreshold: b.cfg.ImageMatchConfig.DistanceThreshold}).
		Build()
	if err != nil {
		return common.WrapError(err, "failed to build image matcher")
	}
	return nil
}

func (b *OrchestratorBuilder) buildProLayer(o *Orchestrator) error {
	pro := b.cfg.ProConfig
	if !pro.Enabled {
		return nil
	}

	embedder := b.embedder
	if embedder == nil {
		embedder = semantic.NewHashingEmbedder(pro.EmbeddingDims)
		if pro.EmbeddingCacheDir != "" {
			cached, err := semantic.NewCachedEmbedder(embedder, pro.EmbeddingCacheDir, b.logger)
			if err != nil {
				return common.WrapError(err, "failed to open embedding cache")
			}
			o.closers = append(o.closers, cached)
			embedder = cached
		}
	}

	if pro.APIKey() != "" {
		b.logger.Debug().Str("env", pro.APIKeyEnv).Msg("API key found; summaries stay local and heuristic")
	}

	o.analyzer = semantic.NewAnalyzer(b.logger, embedder, pro.SimilarityThreshold)
	o.summarizer = b.summarizer
	if o.summarizer == nil {
		o.summarizer = semantic.NewHeuristicSummarizer(pro.SummaryMaxChars)
	}

	b.logger.Info().Str("model", embedder.ModelName()).Msg("Pro mode enabled")
	return nil
}

func (b *OrchestratorBuilder) buildStores(o *Orchestrator) error {
	storage := b.cfg.StorageConfig

	if o.history == nil && storage.EnableHistory {
		store, err := datastore.NewHistoryStore(storage.HistoryDBPath, b.logger)
		if err != nil {
			return common.WrapError(err, "failed to open history store")
		}
		o.closers = append(o.closers, store)
		o.history = store
	}

	if o.cellDiffs == nil && storage.EnableCellDiffExport {
		store, err := datastore.NewParquetCellDiffStore(storage, b.logger)
		if err != nil {
			return common.WrapError(err, "failed to create cell diff store")
		}
		o.cellDiffs = store
	}
	return nil
}

func (b *OrchestratorBuilder) buildReporters(o *Orchestrator) error {
	if b.noReports {
		o.htmlReporter, o.jsonReporter = nil, nil
		return nil
	}

	if o.htmlReporter == nil {
		html, err := reporter.NewHTMLReporter(b.cfg.ReporterConfig, b.logger)
		if err != nil {
			return common.WrapError(err, "failed to create HTML reporter")
		}
		o.htmlReporter = html
	}
	if o.jsonReporter == nil {
		o.jsonReporter = reporter.NewJSONReporter(b.cfg.ReporterConfig, b.logger)
	}
	return nil
}

var _ io.Closer = (*Orchestrator)(nil)
