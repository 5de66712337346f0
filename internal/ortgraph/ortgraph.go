// Package ortgraph executes portable inference graphs through ONNX
// Runtime. It provides the graph-execution engine behind the graph
// backend and an encoder-only session used by the native path.
//
// Sessions are explicit resource handles: created once, reused per
// call, released with Close.
package ortgraph

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	ort "github.com/yalue/onnxruntime_go"
)

var (
	initOnce sync.Once
	initErr  error
)

// InitRuntime initializes the shared ONNX Runtime environment. The
// first call wins; libraryPath optionally points at the onnxruntime
// shared library when it is not on the default search path.
func InitRuntime(libraryPath string) error {
	initOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		initErr = ort.InitializeEnvironment()
		if initErr == nil {
			log.Debug().Str("library", libraryPath).Msg("onnxruntime environment initialized")
		}
	})
	if initErr != nil {
		return fmt.Errorf("initialize onnxruntime: %w", initErr)
	}
	return nil
}

// DestroyRuntime releases the shared environment. Call it once at
// process shutdown, after all sessions are closed.
func DestroyRuntime() {
	if err := ort.DestroyEnvironment(); err != nil {
		log.Warn().Err(err).Msg("failed to destroy onnxruntime environment")
	}
}

func destroyAll(tensors ...ort.ArbitraryTensor) {
	for _, t := range tensors {
		if t != nil {
			_ = t.Destroy()
		}
	}
}
