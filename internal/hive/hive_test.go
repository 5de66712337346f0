package hive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modai-labs/paritycheck/internal/config"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(&config.HiveEnvConfig{
		HiveAPIKey:  "test-key-0123456789",
		HiveBaseURL: baseURL,
		HiveTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	t.Run("nil config rejected", func(t *testing.T) {
		_, err := NewClient(nil)
		assert.Error(t, err)
	})

	t.Run("missing key rejected", func(t *testing.T) {
		_, err := NewClient(&config.HiveEnvConfig{HiveBaseURL: "http://localhost"})
		assert.Error(t, err)
	})
}

func TestCheckKey(t *testing.T) {
	statuses := map[string]struct {
		status   int
		category KeyCheckCategory
		ok       bool
	}{
		"accepted key":     {200, KeyCheckOK, true},
		"invalid key":      {401, KeyCheckUnauthorized, false},
		"forbidden key":    {403, KeyCheckForbidden, false},
		"server error":     {500, KeyCheckUnexpected, false},
		"unexpected class": {418, KeyCheckUnexpected, false},
	}

	for name, tc := range statuses {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, moderationPath, r.URL.Path)
				assert.Equal(t, "Bearer test-key-0123456789", r.Header.Get("Authorization"))
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"status":[]}`))
			}))
			defer srv.Close()

			res, err := newTestClient(t, srv.URL).CheckKey(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.status, res.StatusCode)
			assert.Equal(t, tc.category, res.Category)
			assert.Equal(t, tc.ok, res.OK())
		})
	}

	t.Run("unreachable host is a transport error", func(t *testing.T) {
		c := newTestClient(t, "http://127.0.0.1:1")
		_, err := c.CheckKey(context.Background())
		assert.Error(t, err)
	})
}

func TestRedactKey(t *testing.T) {
	assert.Equal(t, "***", RedactKey("short"))
	redacted := RedactKey("abcdefghijklmnopqrstuvwxyz")
	assert.Equal(t, "abcdefghij...vwxyz", redacted)
}
