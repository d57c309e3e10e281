package config

// ReporterConfig defines configuration for generating reports
type ReporterConfig struct {
	EmbedThumbnails bool   `json:"embed_thumbnails" yaml:"embed_thumbnails"`
	WriteJSON       bool   `json:"write_json" yaml:"write_json"`
	HTMLFileName    string `json:"html_file_name,omitempty" yaml:"html_file_name,omitempty"`
	JSONFileName    string `json:"json_file_name,omitempty" yaml:"json_file_name,omitempty"`
	OutputDir       string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	ReportTitle     string `json:"report_title,omitempty" yaml:"report_title,omitempty"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		EmbedThumbnails: true,
		WriteJSON:       false,
		HTMLFileName:    DefaultReporterHTMLFileName,
		JSONFileName:    DefaultReporterJSONFileName,
		OutputDir:       DefaultReporterOutputDir,
		ReportTitle:     DefaultReporterTitle,
	}
}
