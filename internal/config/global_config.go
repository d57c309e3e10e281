package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/logger"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// maxConfigFileSize bounds how much of a config file is read
const maxConfigFileSize = 10 * 1024 * 1024

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	LogConfig        logger.FileLogConfig `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	TextDiffConfig   TextDiffConfig       `json:"text_diff_config,omitempty" yaml:"text_diff_config,omitempty"`
	TableDiffConfig  TableDiffConfig      `json:"table_diff_config,omitempty" yaml:"table_diff_config,omitempty"`
	ImageMatchConfig ImageMatchConfig     `json:"image_match_config,omitempty" yaml:"image_match_config,omitempty"`
	ExtractorConfig  ExtractorConfig      `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	ReporterConfig   ReporterConfig       `json:"reporter_config,omitempty" yaml:"reporter_config,omitempty"`
	VisualConfig     VisualConfig         `json:"visual_config,omitempty" yaml:"visual_config,omitempty"`
	StorageConfig    StorageConfig        `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	ProConfig        ProConfig            `json:"pro_config,omitempty" yaml:"pro_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:        logger.NewDefaultFileLogConfig(),
		TextDiffConfig:   NewDefaultTextDiffConfig(),
		TableDiffConfig:  NewDefaultTableDiffConfig(),
		ImageMatchConfig: NewDefaultImageMatchConfig(),
		ExtractorConfig:  NewDefaultExtractorConfig(),
		ReporterConfig:   NewDefaultReporterConfig(),
		VisualConfig:     NewDefaultVisualConfig(),
		StorageConfig:    NewDefaultStorageConfig(),
		ProConfig:        NewDefaultProConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// YAML is used when the extension is .yaml or .yml, JSON otherwise.
// Values missing from the file keep their defaults.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	fileManager := common.NewFileManager(logger)
	if !fileManager.FileExists(filePath) {
		return nil, common.NewValidationError("config_file", filePath, "config file does not exist")
	}

	data, err := fileManager.ReadFile(filePath, common.FileReadOptions{MaxSize: maxConfigFileSize})
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	logger.Debug().Str("path", filePath).Msg("Loaded configuration file")
	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

func isYAMLFile(ext string) bool {
	ext = strings.ToLower(ext)
	return ext == ".yaml" || ext == ".yml"
}
