package artifacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modai-labs/paritycheck/internal/classifier"
)

func TestModelConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model_config.json")
	cfg := ModelConfig{
		MaxLength:  768,
		ModelName:  "desklib/ai-text-detector-v1.01",
		VocabSize:  50265,
		HiddenSize: 1024,
		Threshold:  0.5,
	}

	require.NoError(t, SaveModelConfig(path, cfg))
	loaded, err := LoadModelConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}

func TestModelConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  ModelConfig
	}{
		{"zero max_length", ModelConfig{MaxLength: 0, VocabSize: 1, HiddenSize: 1, Threshold: 0.5}},
		{"zero hidden_size", ModelConfig{MaxLength: 1, VocabSize: 1, HiddenSize: 0, Threshold: 0.5}},
		{"zero vocab_size", ModelConfig{MaxLength: 1, VocabSize: 0, HiddenSize: 1, Threshold: 0.5}},
		{"threshold at 1", ModelConfig{MaxLength: 1, VocabSize: 1, HiddenSize: 1, Threshold: 1.0}},
		{"threshold at 0", ModelConfig{MaxLength: 1, VocabSize: 1, HiddenSize: 1, Threshold: 0.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.cfg.Validate(), ErrBadConfig)
		})
	}
}

func TestLoadModelConfigMissingFile(t *testing.T) {
	_, err := LoadModelConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestHeadWeightsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifier_head.json")
	head := classifier.Head{Weight: []float64{0.1, -0.2, 0.3}, Bias: 0.05}

	require.NoError(t, SaveHeadWeights(path, head))

	loaded, err := LoadHeadWeights(path, 3)
	require.NoError(t, err)
	assert.Equal(t, head, loaded)

	_, err = LoadHeadWeights(path, 4)
	assert.Error(t, err, "hidden size mismatch must fail")
}

func TestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("graph-bytes"))
	}))
	defer srv.Close()

	f := NewFetcher()

	t.Run("downloads to dest", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "models", "ai_detector.onnx")
		require.NoError(t, f.Fetch(context.Background(), srv.URL+"/graph", dest))

		raw, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "graph-bytes", string(raw))
	})

	t.Run("existing file is not overwritten", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "ai_detector.onnx")
		require.NoError(t, os.WriteFile(dest, []byte("local"), 0o644))
		require.NoError(t, f.Fetch(context.Background(), srv.URL+"/graph", dest))

		raw, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "local", string(raw))
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "absent.onnx")
		err := f.Fetch(context.Background(), srv.URL+"/missing", dest)
		assert.Error(t, err)
		_, statErr := os.Stat(dest)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestEnsureLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("artifact:" + r.URL.Path))
	}))
	defer srv.Close()

	t.Run("empty base URL is a no-op", func(t *testing.T) {
		require.NoError(t, EnsureLocal(context.Background(), "", filepath.Join(t.TempDir(), "a.onnx")))
	})

	t.Run("fetches missing files by base name", func(t *testing.T) {
		dir := t.TempDir()
		graph := filepath.Join(dir, "ai_detector.onnx")
		cfg := filepath.Join(dir, "model_config.json")
		require.NoError(t, EnsureLocal(context.Background(), srv.URL+"/", graph, "", cfg))

		raw, err := os.ReadFile(graph)
		require.NoError(t, err)
		assert.Equal(t, "artifact:/ai_detector.onnx", string(raw))
		raw, err = os.ReadFile(cfg)
		require.NoError(t, err)
		assert.Equal(t, "artifact:/model_config.json", string(raw))
	})
}
