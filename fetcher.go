package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// AssetFetcher downloads media files to local storage
type AssetFetcher struct {
	client    *http.Client
	userAgent string
}

// NewAssetFetcher creates a fetcher; per-request timeouts come from the context
func NewAssetFetcher(userAgent string) *AssetFetcher {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &AssetFetcher{
		client:    &http.Client{},
		userAgent: userAgent,
	}
}

// FetchAndStore streams the body of url into destination. The body is
// written to a temporary file next to destination and renamed into place,
// so a failed download never leaves a partial file behind.
func (f *AssetFetcher) FetchAndStore(ctx context.Context, url, destination string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	tmp, err := os.CreateTemp(filepath.Dir(destination), ".download-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(tmp.Name(), destination); err != nil {
		return fmt.Errorf("storing %s: %w", destination, err)
	}

	debugLog("stored %s (%d bytes) from %s", destination, n, url)
	return nil
}
