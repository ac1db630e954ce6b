package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type StorageConfig struct {
	Backend string `yaml:"backend" validate:"oneof=file sqlite none"`
	Path    string `yaml:"path"`
}

type TextConfig struct {
	TitleChars    int `yaml:"title_chars" validate:"gt=0"`
	TitleLines    int `yaml:"title_lines" validate:"gt=0"`
	PreviewLength int `yaml:"preview_length" validate:"gt=0"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Debug bool   `yaml:"debug"`
}

type Config struct {
	Data          string        `yaml:"data"`
	Storage       StorageConfig `yaml:"storage"`
	Layout        LayoutConfig  `yaml:"layout"`
	Fit           FitConfig     `yaml:"fit"`
	Text          TextConfig    `yaml:"text"`
	ExportDir     string        `yaml:"export_dir"`
	Confirmations bool          `yaml:"confirmations"`
	Log           LogConfig     `yaml:"log"`
}

func defaultConfig() *Config {
	storagePath := ""
	if dir, err := os.UserConfigDir(); err == nil {
		storagePath = filepath.Join(dir, "mindtree", "mindmap.json")
	}
	return &Config{
		Storage: StorageConfig{
			Backend: "file",
			Path:    storagePath,
		},
		Layout: DefaultLayoutConfig(),
		Fit:    DefaultFitConfig(),
		Text: TextConfig{
			TitleChars:    defaultTitleChars,
			TitleLines:    defaultTitleLines,
			PreviewLength: defaultPreviewLength,
		},
		Confirmations: true,
	}
}

// defaultConfigPath is ~/.mindtree.yaml.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".mindtree.yaml")
}

// loadConfig reads the YAML config at path on top of the defaults. A
// missing file is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		path = defaultConfigPath()
	}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	config.Data = expandPath(config.Data)
	config.Storage.Path = expandPath(config.Storage.Path)
	config.ExportDir = expandPath(config.ExportDir)
	config.Log.Path = expandPath(config.Log.Path)
	config.Storage.Backend = strings.ToLower(config.Storage.Backend)

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// expandPath resolves a leading ~ and makes the path absolute.
func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetSavePath places filename in the export directory, creating it on
// demand. Absolute names are returned as they are.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.ExportDir == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	return filepath.Join(c.ExportDir, filename), nil
}

// openStorage builds the storage backend the config asks for. The returned
// closer releases it.
func (c *Config) openStorage() (Storage, func() error, error) {
	noop := func() error { return nil }
	switch c.Storage.Backend {
	case "none":
		return NewMemoryStorage(), noop, nil
	case "sqlite":
		path := c.Storage.Path
		if strings.EqualFold(filepath.Ext(path), ".json") {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + ".db"
		}
		s, err := OpenSQLiteStorage(path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		if c.Storage.Path == "" {
			return NewMemoryStorage(), noop, nil
		}
		return NewFileStorage(c.Storage.Path), noop, nil
	}
}
