package artifacts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// EnsureLocal downloads every artifact whose file is missing locally
// from baseURL, keyed by base filename. With an empty baseURL it is a
// no-op and missing files surface later as configuration errors.
func EnsureLocal(ctx context.Context, baseURL string, paths ...string) error {
	if baseURL == "" {
		return nil
	}

	fetcher := NewFetcher()
	base := strings.TrimRight(baseURL, "/")
	for _, p := range paths {
		if p == "" {
			continue
		}
		url := base + "/" + filepath.Base(p)
		if err := fetcher.Fetch(ctx, url, p); err != nil {
			return fmt.Errorf("ensure artifact %s: %w", p, err)
		}
	}
	return nil
}
