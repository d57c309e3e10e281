package reporter

import (
	"fmt"
	"path/filepath"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/rs/zerolog"
)

// DirectoryManager creates the directories reports are written to
type DirectoryManager struct {
	logger      zerolog.Logger
	fileManager *common.FileManager
}

// NewDirectoryManager creates a new DirectoryManager
func NewDirectoryManager(logger zerolog.Logger) *DirectoryManager {
	return &DirectoryManager{
		logger:      logger,
		fileManager: common.NewFileManager(logger),
	}
}

// EnsureOutputDirectories ensures the directory exists
func (dm *DirectoryManager) EnsureOutputDirectories(outputDir string) error {
	if err := dm.fileManager.EnsureDirectory(outputDir, common.DirPermissions); err != nil {
		dm.logger.Error().Err(err).Str("path", outputDir).Msg("Failed to create directory")
		return fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}
	return nil
}

// EnsureParentDirectory ensures the directory holding filePath exists
func (dm *DirectoryManager) EnsureParentDirectory(filePath string) error {
	return dm.EnsureOutputDirectories(filepath.Dir(filePath))
}
