package reporter

import (
	"fmt"
	"html/template"
	"io"
	"maps"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/rs/zerolog"
)

// HTMLReporter renders comparison reports as a single self-contained HTML page
type HTMLReporter struct {
	cfg          config.ReporterConfig
	logger       zerolog.Logger
	template     *template.Template
	css          template.CSS
	directoryMgr *DirectoryManager
	fileManager  *common.FileManager
}

var renderBuffers = common.NewBufferPool(64 << 10)

// reportPageData is the view model handed to the template
type reportPageData struct {
	Title           string
	Report          *models.ComparisonReport
	Overview        models.ReportOverview
	GeneratedAt     time.Time
	CSS             template.CSS
	EmbedThumbnails bool
}

// NewHTMLReporter creates a reporter using the embedded template
func NewHTMLReporter(cfg config.ReporterConfig, appLogger zerolog.Logger) (*HTMLReporter, error) {
	moduleLogger := appLogger.With().Str("component", "HTMLReporter").Logger()

	if cfg.OutputDir == "" {
		cfg.OutputDir = config.DefaultReporterOutputDir
	}
	if cfg.HTMLFileName == "" {
		cfg.HTMLFileName = config.DefaultReporterHTMLFileName
	}
	if cfg.ReportTitle == "" {
		cfg.ReportTitle = config.DefaultReporterTitle
	}

	r := &HTMLReporter{
		cfg:          cfg,
		logger:       moduleLogger,
		directoryMgr: NewDirectoryManager(moduleLogger),
		fileManager:  common.NewFileManager(moduleLogger),
	}

	if err := r.loadEmbeddedTemplate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *HTMLReporter) loadEmbeddedTemplate() error {
	funcMap := GetCommonTemplateFunctions()
	maps.Copy(funcMap, GetDiffTemplateFunctions())

	templateContent, err := templatesFS.ReadFile(reportTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to load embedded report template: %w", err)
	}

	cleaned := strings.ReplaceAll(string(templateContent), "\r\n", "\n")
	tmpl, err := template.New(reportTemplateName).Funcs(funcMap).Parse(cleaned)
	if err != nil {
		return fmt.Errorf("failed to parse embedded report template: %w", err)
	}

	css, err := assetsFS.ReadFile(embeddedCSSPath)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Failed to load embedded stylesheet, report will be unstyled")
	}

	r.template = tmpl
	r.css = template.CSS(css)
	return nil
}

// DefaultOutputPath is where Generate writes when no path is given
func (r *HTMLReporter) DefaultOutputPath() string {
	return filepath.Join(r.cfg.OutputDir, r.cfg.HTMLFileName)
}

// Render writes the HTML report to w
func (r *HTMLReporter) Render(report *models.ComparisonReport, w io.Writer) error {
	if report == nil {
		return common.NewValidationError("report", nil, "report cannot be nil")
	}

	generatedAt := report.Meta.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	data := reportPageData{
		Title:           r.cfg.ReportTitle,
		Report:          report,
		Overview:        report.Overview(),
		GeneratedAt:     generatedAt,
		CSS:             r.css,
		EmbedThumbnails: r.cfg.EmbedThumbnails,
	}

	if err := r.template.Execute(w, data); err != nil {
		return common.WrapError(err, "failed to execute report template")
	}
	return nil
}

// Generate renders the report to outputPath, or to the default path when empty.
// It returns the path written.
func (r *HTMLReporter) Generate(report *models.ComparisonReport, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = r.DefaultOutputPath()
	}

	buf := renderBuffers.Get()
	defer renderBuffers.Put(buf)
	if err := r.Render(report, buf); err != nil {
		return "", err
	}

	if err := r.directoryMgr.EnsureParentDirectory(outputPath); err != nil {
		return "", err
	}
	if err := r.fileManager.WriteFile(outputPath, buf.Bytes(), common.DefaultFileWriteOptions()); err != nil {
		return "", err
	}

	r.logger.Info().Str("path", outputPath).Str("comparison_id", report.Meta.ComparisonID).Msg("HTML report generated")
	return outputPath, nil
}
