package fixed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type loader struct {
	http *http.Client
}

func newLoader(timeout time.Duration) *loader {
	return &loader{http: &http.Client{Timeout: timeout}}
}

func (l *loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// fetchCached downloads a source once and keeps it on disk. Later
// loads read the cache file directly; removing the file forces a
// refetch on the next load.
func (l *loader) fetchCached(ctx context.Context, url, cachePath string) ([]byte, error) {
	if _, err := os.Stat(cachePath); os.IsNotExist(err) {
		raw, err := l.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(cachePath, raw, 0o644); err != nil {
			return nil, fmt.Errorf("write cache %s: %w", cachePath, err)
		}
		logrus.Infof("[FixedData] cached %s at %s", url, cachePath)
	}
	raw, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", cachePath, err)
	}
	return raw, nil
}
