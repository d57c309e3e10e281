package common

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	// DirPermissions is used for every directory the application creates
	DirPermissions fs.FileMode = 0755
	// FilePermissions is used for every file the application writes
	FilePermissions fs.FileMode = 0644
)

// FileReadOptions configures file reading behavior
type FileReadOptions struct {
	MaxSize int64 // Maximum file size to read (0 = no limit)
}

// DefaultFileReadOptions returns default read options
func DefaultFileReadOptions() FileReadOptions {
	return FileReadOptions{}
}

// FileWriteOptions configures file writing behavior
type FileWriteOptions struct {
	CreateDirs  bool
	Permissions fs.FileMode
}

// DefaultFileWriteOptions returns default write options
func DefaultFileWriteOptions() FileWriteOptions {
	return FileWriteOptions{
		CreateDirs:  true,
		Permissions: FilePermissions,
	}
}

// FileManager provides file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists checks if a file or directory exists
func (fm *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ReadFile reads a whole file, refusing files larger than opts.MaxSize
func (fm *FileManager) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, WrapError(err, "failed to stat file: "+path)
	}
	if info.IsDir() {
		return nil, NewValidationError("path", path, "is a directory")
	}
	if opts.MaxSize > 0 && info.Size() > opts.MaxSize {
		return nil, NewValidationError("path", path, "file exceeds maximum readable size")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, WrapError(err, "failed to open file: "+path)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fm.logger.Error().Err(err).Str("path", path).Msg("Failed to close file.")
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, WrapError(err, "failed to read file: "+path)
	}
	return content, nil
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	if path == "" || path == "." {
		return nil
	}

	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return WrapError(err, "failed to create directory: "+path)
	}

	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// WriteFile writes data to a file with the given options
func (fm *FileManager) WriteFile(path string, data []byte, opts FileWriteOptions) error {
	if opts.CreateDirs {
		if err := fm.EnsureDirectory(filepath.Dir(path), DirPermissions); err != nil {
			return WrapError(err, "failed to create parent directories for: "+path)
		}
	}

	perm := opts.Permissions
	if perm == 0 {
		perm = FilePermissions
	}

	if err := os.WriteFile(path, data, perm); err != nil {
		return WrapError(err, "failed to write file: "+path)
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Wrote file")
	return nil
}
