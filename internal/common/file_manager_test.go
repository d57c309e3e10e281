package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager_WriteAndRead(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "nested", "dir", "report.json")

	require.NoError(t, fm.WriteFile(path, []byte(`{"ok":true}`), DefaultFileWriteOptions()))
	assert.True(t, fm.FileExists(path))

	data, err := fm.ReadFile(path, DefaultFileReadOptions())
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileManager_ReadFileLimits(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	_, err := fm.ReadFile(path, FileReadOptions{MaxSize: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = fm.ReadFile(dir, DefaultFileReadOptions())
	assert.Error(t, err)

	_, err = fm.ReadFile(filepath.Join(dir, "missing"), DefaultFileReadOptions())
	assert.Error(t, err)
}

func TestFileManager_EnsureDirectory(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()

	target := filepath.Join(dir, "a", "b")
	require.NoError(t, fm.EnsureDirectory(target, DirPermissions))
	require.NoError(t, fm.EnsureDirectory(target, DirPermissions))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Error(t, fm.EnsureDirectory(file, DirPermissions))

	assert.NoError(t, fm.EnsureDirectory("", DirPermissions))
}
