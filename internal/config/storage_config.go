package config

// StorageConfig defines configuration for comparison history and cell diff exports
type StorageConfig struct {
	EnableHistory        bool   `json:"enable_history" yaml:"enable_history"`
	EnableCellDiffExport bool   `json:"enable_cell_diff_export" yaml:"enable_cell_diff_export"`
	CompressionCodec     string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,codec"`
	HistoryDBPath        string `json:"history_db_path,omitempty" yaml:"history_db_path,omitempty" validate:"required_if=EnableHistory true"`
	ParquetBasePath      string `json:"parquet_base_path,omitempty" yaml:"parquet_base_path,omitempty" validate:"required_if=EnableCellDiffExport true"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		EnableHistory:        false,
		EnableCellDiffExport: false,
		CompressionCodec:     DefaultStorageCompressionCodec,
		HistoryDBPath:        DefaultStorageHistoryDBPath,
		ParquetBasePath:      DefaultStorageParquetBasePath,
	}
}
