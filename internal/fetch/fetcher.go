// Package fetch downloads the PDF corpus listed in a plain-text URL list.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fetcher downloads corpus PDFs over HTTP, skipping files already on disk.
type Fetcher struct {
	client *http.Client
	logger *zap.Logger // optional; when set, logs per-file progress
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLogger sets a logger for per-file download progress.
func WithLogger(l *zap.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = l }
}

// WithClient sets the HTTP client (tests use httptest servers).
func WithClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher creates a fetcher with a 60s-timeout HTTP client.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{client: &http.Client{Timeout: 60 * time.Second}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Summary reports the outcome of a corpus fetch.
type Summary struct {
	Total      int
	Downloaded int
	Skipped    int
	Failed     []string
}

// ReadList reads URLs from the list file at path, one per line, ignoring
// blank lines.
func ReadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read PDF list: %w", err)
	}
	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}

// FetchAll downloads every URL in the list file into destDir. Files that
// already exist are skipped; per-file failures are recorded in the summary
// and do not stop the run.
func (f *Fetcher) FetchAll(ctx context.Context, listPath, destDir string) (*Summary, error) {
	urls, err := ReadList(listPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("create PDF dir: %w", err)
	}

	sum := &Summary{Total: len(urls)}
	for _, u := range urls {
		filename := filepath.Base(u)
		dest := filepath.Join(destDir, filename)
		if _, err := os.Stat(dest); err == nil {
			sum.Skipped++
			if f.logger != nil {
				f.logger.Debug("fetch skipping existing file", zap.String("file", filename))
			}
			continue
		}
		if err := f.download(ctx, u, dest); err != nil {
			sum.Failed = append(sum.Failed, filename)
			if f.logger != nil {
				f.logger.Warn("fetch download failed", zap.String("file", filename), zap.Error(err))
			}
			continue
		}
		sum.Downloaded++
		if f.logger != nil {
			f.logger.Info("fetch downloaded", zap.String("file", filename))
		}
	}
	return sum, nil
}

// download streams one URL to dest, removing the partial file on failure.
func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("write file: %w", err)
	}
	return out.Close()
}
