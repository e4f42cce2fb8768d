// Package config provides configuration loading and structs for the shiori tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Links   LinksConfig   `yaml:"links"`
	Scan    ScanConfig    `yaml:"scan"`
	Search  SearchConfig  `yaml:"search"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds corpus and manifest paths.
type StorageConfig struct {
	PDFDir         string `yaml:"pdf_dir"`
	ManifestPath   string `yaml:"manifest_path"`
	FrameworksPath string `yaml:"frameworks_path"`
	PDFListPath    string `yaml:"pdf_list_path"`
}

// LinksConfig holds the corpus raw URL prefix and the PDF viewer base URL.
type LinksConfig struct {
	RawPrefix  string `yaml:"raw_prefix"`
	ViewerBase string `yaml:"viewer_base"`
}

// ScanConfig bounds per-document extraction work.
type ScanConfig struct {
	TOCProbePages   int `yaml:"toc_probe_pages"`
	DefaultTOCPages int `yaml:"default_toc_pages"`
	MaxScanPages    int `yaml:"max_scan_pages"`
	TOCDotThreshold int `yaml:"toc_dot_threshold"`
}

// SearchConfig holds query scoring settings.
type SearchConfig struct {
	MinScore     float64 `yaml:"min_score"`
	DefaultLimit int     `yaml:"default_limit"`
	MaxLimit     int     `yaml:"max_limit"`
}

// WatchConfig holds corpus-watch settings for serve mode.
type WatchConfig struct {
	Enabled    *bool `yaml:"enabled"`
	DebounceMS int   `yaml:"debounce_ms"`
}

// EnabledOrDefault returns whether corpus watching is on; defaults to true
// when unset.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Load reads and parses the config file at path, applies defaults, and
// expands storage paths. Returns an error if the file cannot be read or
// parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.PDFDir = expandPath(cfg.Storage.PDFDir, configDir)
	cfg.Storage.ManifestPath = expandPath(cfg.Storage.ManifestPath, configDir)
	cfg.Storage.FrameworksPath = expandPath(cfg.Storage.FrameworksPath, configDir)
	cfg.Storage.PDFListPath = expandPath(cfg.Storage.PDFListPath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
