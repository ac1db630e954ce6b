package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLayoutConfig(), config.Layout)
	assert.Equal(t, DefaultFitConfig(), config.Fit)
	assert.Equal(t, "file", config.Storage.Backend)
	assert.True(t, config.Confirmations)
	assert.Equal(t, defaultPreviewLength, config.Text.PreviewLength)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
data: ` + filepath.Join(dir, "map.yaml") + `
storage:
  backend: SQLite
  path: ` + filepath.Join(dir, "store.json") + `
layout:
  h_gap: 300
fit:
  on_edit: true
text:
  title_chars: 12
confirmations: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	config, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 300.0, config.Layout.HGap)
	assert.Equal(t, defaultVGap, config.Layout.VGap)
	assert.True(t, config.Fit.OnEdit)
	assert.Equal(t, defaultBasePadding, config.Fit.BasePadding)
	assert.Equal(t, 12, config.Text.TitleChars)
	assert.Equal(t, defaultTitleLines, config.Text.TitleLines)
	assert.Equal(t, "sqlite", config.Storage.Backend)
	assert.False(t, config.Confirmations)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"negative gap", "layout:\n  v_gap: -1\n"},
		{"unknown backend", "storage:\n  backend: redis\n"},
		{"max below base padding", "fit:\n  base_padding: 200\n  max_padding: 100\n"},
		{"zero title lines", "text:\n  title_lines: 0\n"},
		{"malformed yaml", "layout: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))
			_, err := loadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "maps", "a.json"), expandPath("~/maps/a.json"))
	assert.Equal(t, "", expandPath(""))
	assert.True(t, filepath.IsAbs(expandPath("relative.json")))
}

func TestGetSavePath(t *testing.T) {
	dir := t.TempDir()
	config := &Config{ExportDir: filepath.Join(dir, "out")}

	path, err := config.GetSavePath("map.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "map.png"), path)
	assert.DirExists(t, filepath.Join(dir, "out"))

	path, err = config.GetSavePath("/abs/map.png")
	require.NoError(t, err)
	assert.Equal(t, "/abs/map.png", path)

	path, err = (&Config{}).GetSavePath("map.png")
	require.NoError(t, err)
	assert.Equal(t, "map.png", path)
}

func TestGetSavePathReportsMkdirFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	config := &Config{ExportDir: filepath.Join(blocker, "out")}
	_, err := config.GetSavePath("map.png")
	assert.ErrorContains(t, err, "create export directory")
}

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()

	config := &Config{Storage: StorageConfig{Backend: "none"}}
	s, closer, err := config.openStorage()
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)
	assert.NoError(t, closer())

	config = &Config{Storage: StorageConfig{Backend: "file", Path: filepath.Join(dir, "m.json")}}
	s, closer, err = config.openStorage()
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)
	assert.NoError(t, closer())

	config = &Config{Storage: StorageConfig{Backend: "sqlite", Path: filepath.Join(dir, "m.json")}}
	s, closer, err = config.openStorage()
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStorage{}, s)
	require.NoError(t, s.Save(sampleTree()))
	assert.NoError(t, closer())
	assert.FileExists(t, filepath.Join(dir, "m.db"))
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(LogConfig{})
	require.NoError(t, err)
	logger.Info("discarded")

	path := filepath.Join(t.TempDir(), "logs", "mindtree.log")
	logger, err = newLogger(LogConfig{Path: path, Debug: true})
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "mindtree")
}
