package reporter

import (
	"encoding/json"
	"path/filepath"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/rs/zerolog"
)

// JSONReporter writes the comparison report as indented JSON
type JSONReporter struct {
	cfg         config.ReporterConfig
	logger      zerolog.Logger
	fileManager *common.FileManager
}

// NewJSONReporter creates a new JSONReporter
func NewJSONReporter(cfg config.ReporterConfig, appLogger zerolog.Logger) *JSONReporter {
	logger := appLogger.With().Str("component", "JSONReporter").Logger()
	if cfg.OutputDir == "" {
		cfg.OutputDir = config.DefaultReporterOutputDir
	}
	if cfg.JSONFileName == "" {
		cfg.JSONFileName = config.DefaultReporterJSONFileName
	}
	return &JSONReporter{
		cfg:         cfg,
		logger:      logger,
		fileManager: common.NewFileManager(logger),
	}
}

// Marshal returns the indented JSON form of the report
func (r *JSONReporter) Marshal(report *models.ComparisonReport) ([]byte, error) {
	if report == nil {
		return nil, common.NewValidationError("report", nil, "report cannot be nil")
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, common.WrapError(err, "failed to marshal report")
	}
	return append(data, '\n'), nil
}

// Write stores the report at path, or at the default location when empty.
// It returns the path written.
func (r *JSONReporter) Write(report *models.ComparisonReport, path string) (string, error) {
	if path == "" {
		path = filepath.Join(r.cfg.OutputDir, r.cfg.JSONFileName)
	}

	data, err := r.Marshal(report)
	if err != nil {
		return "", err
	}
	if err := r.fileManager.WriteFile(path, data, common.DefaultFileWriteOptions()); err != nil {
		return "", err
	}

	r.logger.Info().Str("path", path).Msg("JSON report written")
	return path, nil
}
