package artifacts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

// Fetcher downloads model artifacts over HTTP with retries. Artifacts
// already present on disk are left untouched, downloads go through a
// temp file so a partial transfer never shadows a good artifact.
type Fetcher struct {
	client *retryablehttp.Client
}

func NewFetcher() *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 5
	client.HTTPClient.Timeout = 5 * time.Minute
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 20 * time.Second
	client.Logger = nil

	log.Debug().
		Int("retry_max", client.RetryMax).
		Str("timeout", client.HTTPClient.Timeout.String()).
		Msg("artifact fetcher initialized")

	return &Fetcher{client: client}
}

// Fetch downloads url to dest unless dest already exists.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		log.Debug().Str("dest", dest).Msg("artifact already present, skipping download")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("build artifact request: %w", err)
	}

	log.Info().Str("url", url).Str("dest", dest).Msg("downloading artifact")
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch artifact %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("fetch artifact %s: status %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".artifact-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("finalize artifact: %w", err)
	}

	log.Info().Str("dest", dest).Msg("artifact downloaded")
	return nil
}
