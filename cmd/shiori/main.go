// Package main is the shiori CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/shiori/internal/builder"
	"github.com/hyperjump/shiori/internal/config"
	"github.com/hyperjump/shiori/internal/extract"
	"github.com/hyperjump/shiori/internal/fetch"
	"github.com/hyperjump/shiori/internal/frameworks"
	"github.com/hyperjump/shiori/internal/manifest"
	"github.com/hyperjump/shiori/internal/models"
	"github.com/hyperjump/shiori/internal/query"
	"github.com/hyperjump/shiori/internal/sections"
	"github.com/hyperjump/shiori/internal/server"
	"github.com/hyperjump/shiori/internal/viewer"
	"github.com/hyperjump/shiori/internal/watcher"
	"github.com/hyperjump/shiori/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/shiori/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "build":
		runBuild()
	case "validate":
		runValidate()
	case "search":
		runSearch()
	case "resolve":
		runResolve()
	case "fetch":
		runFetch()
	case "serve":
		runServe()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("shiori version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// newBuilder wires the extraction pipeline from config.
func newBuilder(cfg *config.Config, logger *zap.Logger, debug bool) *builder.Builder {
	asmOpts := []sections.AssemblerOption{}
	buildOpts := []builder.BuilderOption{builder.WithLogger(logger)}
	if debug {
		asmOpts = append(asmOpts, sections.WithLogger(logger))
	}
	asm := sections.NewAssembler(extract.NewPDFOpener(), sections.DefaultPatterns(), cfg.ScanLimits(), asmOpts...)
	store := manifest.NewStore(cfg.Storage.ManifestPath)
	return builder.NewBuilder(asm, store, cfg.Storage.PDFDir, buildOpts...)
}

func runBuild() {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (ToC pages, fallbacks, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("config loaded", zap.String("config_path", resolvedConfigPath), zap.Bool("debug", debugMode))

	b := newBuilder(cfg, logger, debugMode)
	m, sum, err := b.Build(context.Background())
	if err != nil {
		logger.Fatal("Build failed", zap.Error(err))
	}

	fmt.Printf("Processed %d/%d documents, %d sections -> %s\n",
		sum.Processed, sum.Found, sum.TotalSections, cfg.Storage.ManifestPath)
	for _, f := range sum.Failures {
		fmt.Printf("  skipped %s: %s\n", f.File, f.Err)
	}

	report := manifest.Validate(m)
	printReport(report)
	if !report.OK() {
		os.Exit(1)
	}
}

func runValidate() {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	m, err := loadManifestOrExplain(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	report := manifest.Validate(m)
	printReport(report)
	if !report.OK() {
		os.Exit(1)
	}
	fmt.Println("Manifest validation passed")
}

func printReport(report *manifest.Report) {
	for _, issue := range report.Issues {
		fmt.Printf("issue: %s\n", issue)
	}
	for _, warning := range report.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
}

// loadManifestOrExplain loads the manifest, converting the not-built and
// malformed conditions into actionable messages.
func loadManifestOrExplain(cfg *config.Config) (models.Manifest, error) {
	store := manifest.NewStore(cfg.Storage.ManifestPath)
	m, err := store.Load()
	switch {
	case errors.Is(err, manifest.ErrNotBuilt):
		return nil, fmt.Errorf("manifest not found at %s; run 'shiori build' first", store.Path())
	case errors.Is(err, manifest.ErrMalformed):
		return nil, fmt.Errorf("manifest at %s is malformed (%v); run 'shiori build' to rebuild it", store.Path(), err)
	case err != nil:
		return nil, err
	}
	return m, nil
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = search the local manifest directly)")
	limit := fs.Int("limit", 10, "number of results")
	minScore := fs.Float64("min-score", 0, "minimum relevance score (0 = config default)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(searchArgs)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		fmt.Fprintln(os.Stderr, "Usage: shiori search [flags] <query>")
		os.Exit(1)
	}

	var results []models.SectionResult
	if *serverURL != "" {
		res, err := searchViaHTTP(*serverURL, queryStr, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		results = res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		m, err := loadManifestOrExplain(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		threshold := cfg.Search.MinScore
		if *minScore > 0 {
			threshold = *minScore
		}
		engine := query.NewEngine(query.DefaultTables(), threshold)
		links := viewer.NewLinks(cfg.Links.RawPrefix, cfg.Links.ViewerBase)
		results = engine.Search(m, queryStr)
		if len(results) > *limit {
			results = results[:*limit]
		}
		for i := range results {
			results[i].ViewerURL = links.ViewerURL(results[i].DocFile, results[i].Page)
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		if len(results) == 0 {
			fmt.Println("No matching sections found.")
			return
		}
		for _, r := range results {
			fmt.Printf("%.1f  %s - %s (p.%d)\n", r.Score, r.DocTitle, utils.Truncate(r.SectionLabel, 80), r.Page)
			if r.ViewerURL != "" {
				fmt.Printf("      %s\n", r.ViewerURL)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL, queryStr string, limit int) ([]models.SectionResult, error) {
	u := fmt.Sprintf("%s/api/v1/search?q=%s&limit=%d", serverURL, url.QueryEscape(queryStr), limit)
	resp, err := http.Get(u)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out struct {
		Results []models.SectionResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Results, nil
}

func runResolve() {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	style := fs.String("style", "", "architectural style to look up")
	year := fs.Int("year", 0, "construction year")
	_ = fs.Parse(os.Args[2:])

	if *style == "" || *year == 0 {
		fmt.Fprintln(os.Stderr, "Usage: shiori resolve -style <style> -year <year>")
		os.Exit(1)
	}
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	m, err := loadManifestOrExplain(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	table, err := frameworks.Load(cfg.Storage.FrameworksPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load frameworks table: %v\n", err)
		os.Exit(1)
	}
	res := table.Resolve(m, *style, *year)
	if res == nil {
		fmt.Println("No section matches that style and year.")
		os.Exit(1)
	}
	links := viewer.NewLinks(cfg.Links.RawPrefix, cfg.Links.ViewerBase)
	fmt.Printf("%s (%s) -> %s p.%d\n", res.Style, res.Period, res.DocFile, res.Page)
	fmt.Println(links.ViewerURL(res.DocFile, res.Page))
}

func runFetch() {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	f := fetch.NewFetcher(fetch.WithLogger(logger))
	sum, err := f.FetchAll(context.Background(), cfg.Storage.PDFListPath, cfg.Storage.PDFDir)
	if err != nil {
		logger.Fatal("Fetch failed", zap.Error(err))
	}
	fmt.Printf("Downloaded %d, skipped %d existing, %d failed (of %d)\n",
		sum.Downloaded, sum.Skipped, len(sum.Failed), sum.Total)
	for _, name := range sum.Failed {
		fmt.Printf("  failed: %s\n", name)
	}
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (corpus events, scoring, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("config loaded", zap.String("config_path", resolvedConfigPath), zap.Bool("debug", debugMode))

	engine := query.NewEngine(query.DefaultTables(), cfg.Search.MinScore)
	links := viewer.NewLinks(cfg.Links.RawPrefix, cfg.Links.ViewerBase)
	var table *frameworks.Table
	if t, err := frameworks.Load(cfg.Storage.FrameworksPath); err != nil {
		logger.Warn("frameworks table unavailable", zap.String("path", cfg.Storage.FrameworksPath), zap.Error(err))
	} else {
		table = t
	}

	srv := server.NewServer(engine, table, links, cfg, logger)
	b := newBuilder(cfg, logger, debugMode)
	store := manifest.NewStore(cfg.Storage.ManifestPath)

	m, err := store.Load()
	switch {
	case errors.Is(err, manifest.ErrNotBuilt):
		logger.Info("manifest not built yet, building corpus")
		m, _, err = b.Build(context.Background())
		if err != nil {
			logger.Fatal("Initial build failed", zap.Error(err))
		}
	case errors.Is(err, manifest.ErrMalformed):
		logger.Fatal("Manifest is malformed; run 'shiori build' to rebuild it", zap.Error(err))
	case err != nil:
		logger.Fatal("Failed to load manifest", zap.Error(err))
	}
	srv.SetManifest(m)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Watch.EnabledOrDefault() {
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.NewWatcher(
			cfg.Storage.PDFDir,
			time.Duration(cfg.Watch.DebounceMS)*time.Millisecond,
			func() {
				rebuilt, _, buildErr := b.Build(context.Background())
				if buildErr != nil {
					logger.Warn("corpus rebuild failed", zap.Error(buildErr))
					return
				}
				srv.SetManifest(rebuilt)
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start corpus watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = inspect the local manifest)")
	_ = fs.Parse(os.Args[2:])

	if *serverURL != "" {
		resp, err := http.Get(*serverURL + "/api/v1/status")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		fmt.Println(strings.TrimSpace(string(body)))
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	m, err := loadManifestOrExplain(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("documents:  %d\n", len(m))
	fmt.Printf("sections:   %d\n", m.TotalSections())
	fmt.Printf("manifest:   %s\n", cfg.Storage.ManifestPath)
	fmt.Printf("pdf_dir:    %s\n", cfg.Storage.PDFDir)
}

func printUsage() {
	fmt.Println(`shiori - section navigator for historic context statement PDFs

Usage:
  shiori fetch [flags]              Download the PDF corpus
  shiori build [flags]              Extract sections and write the manifest
  shiori validate [flags]           Validate the persisted manifest
  shiori search [flags] <query>     Search sections by style or keywords
  shiori resolve [flags]            Resolve style + year to a section page
  shiori serve [flags]              Start the HTTP API (auto-rebuild on corpus changes)
  shiori status [flags]             Show manifest status
  shiori version                    Show version
  shiori help                       Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/shiori/config.yaml,
                     falling back to ./config.yaml when present)
  --debug            Enable debug logging (build, serve)

Search Flags:
  --server string    Server URL (empty = search the local manifest directly)
  --limit int        Number of results (default: 10)
  --min-score float  Minimum relevance score (0 = config default)
  --output string    Output format: text or json (default: text)

Examples:
  shiori build
  shiori search gothic revival
  shiori search --output json "evaluation criteria"
  shiori resolve -style "Queen Anne" -year 1895
  shiori serve --debug`)
}
