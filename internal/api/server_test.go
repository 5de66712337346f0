package api

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modai-labs/paritycheck/internal/backend"
	"github.com/modai-labs/paritycheck/internal/config"
	"github.com/modai-labs/paritycheck/internal/detector"
)

type countingBackend struct {
	calls       int
	probability float64
	fail        bool
}

func (c *countingBackend) Name() string { return "stub" }

func (c *countingBackend) Infer(context.Context, string) (detector.InferenceResult, error) {
	c.calls++
	if c.fail {
		return detector.InferenceResult{}, backend.ErrUnavailable
	}
	return detector.InferenceResult{
		Probability: c.probability,
		Label:       detector.LabelFor(c.probability, detector.DefaultThreshold),
	}, nil
}

func testConfig() *config.ServerEnvConfig {
	return &config.ServerEnvConfig{
		Address:       "127.0.0.1",
		Port:          0,
		BodySizeLimit: 1 << 20,
		CacheSize:     16,
	}
}

func postDetect(t *testing.T, s *Server, body string) (int, DetectResponse) {
	t.Helper()
	req := httptest.NewRequest("POST", "/detect", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out DetectResponse
	if resp.StatusCode == 200 {
		require.NoError(t, sonic.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestNewServer(t *testing.T) {
	_, err := NewServer(nil, &countingBackend{})
	assert.Error(t, err)
	_, err = NewServer(testConfig(), nil)
	assert.Error(t, err)
}

func TestDetectEndpoint(t *testing.T) {
	t.Run("returns probability and label", func(t *testing.T) {
		b := &countingBackend{probability: 0.87}
		s, err := NewServer(testConfig(), b)
		require.NoError(t, err)

		status, out := postDetect(t, s, `{"text":"sample input"}`)
		assert.Equal(t, 200, status)
		assert.InDelta(t, 0.87, out.Probability, 1e-12)
		assert.Equal(t, detector.LabelAIGenerated, out.Label)
		assert.False(t, out.Cached)
	})

	t.Run("second request hits the cache", func(t *testing.T) {
		b := &countingBackend{probability: 0.25}
		s, err := NewServer(testConfig(), b)
		require.NoError(t, err)

		status, _ := postDetect(t, s, `{"text":"same text"}`)
		assert.Equal(t, 200, status)
		status, out := postDetect(t, s, `{"text":"same text"}`)
		assert.Equal(t, 200, status)
		assert.True(t, out.Cached)
		assert.Equal(t, 1, b.calls)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		s, err := NewServer(testConfig(), &countingBackend{})
		require.NoError(t, err)

		status, _ := postDetect(t, s, `{"text":""}`)
		assert.Equal(t, 400, status)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		s, err := NewServer(testConfig(), &countingBackend{})
		require.NoError(t, err)

		status, _ := postDetect(t, s, `{not json`)
		assert.Equal(t, 400, status)
	})

	t.Run("unavailable backend maps to 503", func(t *testing.T) {
		s, err := NewServer(testConfig(), &countingBackend{fail: true})
		require.NoError(t, err)

		status, _ := postDetect(t, s, `{"text":"anything"}`)
		assert.Equal(t, 503, status)
	})
}

func TestHealthEndpoint(t *testing.T) {
	s, err := NewServer(testConfig(), &countingBackend{})
	require.NoError(t, err)

	resp, err := s.App.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}
