package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/modai-labs/paritycheck/internal/detector"
)

// DefaultSubprocessTimeout bounds one external inference call,
// including the executable's model and graph load latency.
const DefaultSubprocessTimeout = 30 * time.Second

// SubprocessBackend invokes an external detector executable as
// `<executable> --text "<input>"` and parses its standard output.
// Per-call failures (timeout, non-zero exit, unparsable output) degrade
// to ErrUnavailable so a broken executable never aborts the comparison
// of the other backends.
type SubprocessBackend struct {
	executable string
	timeout    time.Duration
}

type SubprocessOption func(*SubprocessBackend)

func WithTimeout(d time.Duration) SubprocessOption {
	return func(b *SubprocessBackend) {
		b.timeout = d
	}
}

// NewSubprocessBackend fails fast if the executable does not exist;
// everything after construction degrades per call instead.
func NewSubprocessBackend(executable string, opts ...SubprocessOption) (*SubprocessBackend, error) {
	if executable == "" {
		return nil, fmt.Errorf("subprocess backend: executable path cannot be empty")
	}
	if _, err := os.Stat(executable); err != nil {
		return nil, fmt.Errorf("subprocess backend: executable not found: %w", err)
	}

	b := &SubprocessBackend{
		executable: executable,
		timeout:    DefaultSubprocessTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *SubprocessBackend) Name() string {
	return NameSubprocess
}

func (b *SubprocessBackend) Infer(ctx context.Context, text string) (detector.InferenceResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, b.executable, "--text", text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if runCtx.Err() != nil {
		// CommandContext kills the child on deadline, no orphan remains.
		log.Warn().Str("executable", b.executable).Dur("timeout", b.timeout).Msg("subprocess inference timed out")
		return detector.InferenceResult{}, fmt.Errorf("%w: timed out after %s", ErrUnavailable, b.timeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Warn().Int("exit_code", exitErr.ExitCode()).Str("stderr", stderr.String()).Msg("subprocess exited non-zero")
			return detector.InferenceResult{}, fmt.Errorf("%w: exit code %d", ErrUnavailable, exitErr.ExitCode())
		}
		return detector.InferenceResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	result, err := ParseOutput(stdout.String())
	if err != nil {
		log.Warn().Err(err).Str("executable", b.executable).Msg("could not parse subprocess output")
		return detector.InferenceResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return result, nil
}
