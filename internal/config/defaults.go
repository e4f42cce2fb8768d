package config

import (
	"github.com/hyperjump/shiori/internal/query"
	"github.com/hyperjump/shiori/internal/sections"
	"github.com/hyperjump/shiori/internal/viewer"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.PDFDir == "" {
		cfg.Storage.PDFDir = "/usr/local/var/shiori/data/pdfs"
	}
	if cfg.Storage.ManifestPath == "" {
		cfg.Storage.ManifestPath = "/usr/local/var/shiori/data/metadata/manifest.json"
	}
	if cfg.Storage.FrameworksPath == "" {
		cfg.Storage.FrameworksPath = "/usr/local/var/shiori/data/config/frameworks.csv"
	}
	if cfg.Storage.PDFListPath == "" {
		cfg.Storage.PDFListPath = "/usr/local/var/shiori/data/config/pdf_list.txt"
	}
	if cfg.Links.RawPrefix == "" {
		cfg.Links.RawPrefix = viewer.DefaultRawPrefix
	}
	if cfg.Links.ViewerBase == "" {
		cfg.Links.ViewerBase = viewer.DefaultViewerBase
	}

	limits := sections.DefaultLimits()
	if cfg.Scan.TOCProbePages == 0 {
		cfg.Scan.TOCProbePages = limits.TOCProbePages
	}
	if cfg.Scan.DefaultTOCPages == 0 {
		cfg.Scan.DefaultTOCPages = limits.DefaultTOCPages
	}
	if cfg.Scan.MaxScanPages == 0 {
		cfg.Scan.MaxScanPages = limits.MaxScanPages
	}
	if cfg.Scan.TOCDotThreshold == 0 {
		cfg.Scan.TOCDotThreshold = limits.TOCDotThreshold
	}

	if cfg.Search.MinScore == 0 {
		cfg.Search.MinScore = query.DefaultMinScore
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 2000
	}
}

// ScanLimits returns the scan bounds as sections.Limits.
func (c *Config) ScanLimits() sections.Limits {
	return sections.Limits{
		TOCProbePages:   c.Scan.TOCProbePages,
		DefaultTOCPages: c.Scan.DefaultTOCPages,
		MaxScanPages:    c.Scan.MaxScanPages,
		TOCDotThreshold: c.Scan.TOCDotThreshold,
	}
}
