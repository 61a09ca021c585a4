package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Fetcher retrieves the raw PHEI benchmark page.
type Fetcher interface {
	FetchPage(ctx context.Context) (string, error)
	Name() string
}

// PheiFetcher fetches the live benchmark page over HTTP.
type PheiFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewPheiFetcher creates a fetcher with optional proxy support.
func NewPheiFetcher(baseURL, proxyURL string, timeout time.Duration) *PheiFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &PheiFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *PheiFetcher) Name() string { return "phei" }

func (f *PheiFetcher) FetchPage(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.BaseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read page body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}
	return string(body), nil
}

// FileFetcher reads a saved copy of the page, for offline runs and tests.
type FileFetcher struct {
	Path string
}

func NewFileFetcher(path string) *FileFetcher { return &FileFetcher{Path: path} }

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) FetchPage(_ context.Context) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read page file: %w", err)
	}
	return string(data), nil
}
