package slicejob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/me/slicecfg/internal/config"
)

// ErrNoBinary is returned when no engine binary is configured for the job's slicer.
var ErrNoBinary = errors.New("no slicer binary configured")

// ExitError reports a slicer process that exited non-zero.
type ExitError struct {
	Slicer string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d: %s", e.Slicer, e.Code, e.Stderr)
}

// Result describes a finished slicer run.
type Result struct {
	JobID      string
	WorkDir    string // empty when the directory was removed after the run
	ConfigPath string
	Input      string // absolute model path handed to the engine
	Output     string // absolute toolpath path written into the payload
	Stdout     string
	Stderr     string
	Duration   time.Duration
}

// Runner executes slicing engines as local processes:
//
//	<binary> --config <workdir>/config.json <input>
type Runner struct {
	cfg    config.RunnerConfig
	logger *slog.Logger
}

// NewRunner creates a Runner. An empty WorkDir means os.TempDir(); a relative
// one is resolved against the current directory.
func NewRunner(cfg config.RunnerConfig, logger *slog.Logger) *Runner {
	if cfg.WorkDir == "" {
		cfg.WorkDir = os.TempDir()
	}
	if abs, err := filepath.Abs(cfg.WorkDir); err == nil {
		cfg.WorkDir = abs
	}
	return &Runner{cfg: cfg, logger: logger.With("component", "slice-runner")}
}

// Run writes the job payload and invokes the engine, blocking until it exits
// or ctx is cancelled. The engine runs inside the job's work dir, so relative
// input and output paths are resolved against the caller's directory first.
func (r *Runner) Run(ctx context.Context, job *Job) (*Result, error) {
	slicer := job.Config.Slicer()
	binary := r.cfg.Binary(slicer)
	if binary == "" {
		return nil, fmt.Errorf("job %s: %w for %s", job.ID, ErrNoBinary, slicer)
	}

	resolved, err := job.absolute()
	if err != nil {
		return nil, err
	}

	workDir := filepath.Join(r.cfg.WorkDir, job.ID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("job %s: create work dir: %w", job.ID, err)
	}
	if !r.cfg.KeepWorkDir {
		defer os.RemoveAll(workDir)
	}

	data, err := json.MarshalIndent(resolved.Payload(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("job %s: marshal payload: %w", job.ID, err)
	}
	configPath := filepath.Join(workDir, "config.json")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("job %s: write payload: %w", job.ID, err)
	}

	cmd := exec.CommandContext(ctx, binary, "--config", configPath, resolved.Input)
	cmd.Dir = workDir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	r.logger.Info("slicing", "job_id", job.ID, "slicer", slicer.Name(), "input", resolved.Input, "output", resolved.Output)
	start := time.Now()
	runErr := cmd.Run()

	result := &Result{
		JobID:      job.ID,
		WorkDir:    workDir,
		ConfigPath: configPath,
		Input:      resolved.Input,
		Output:     resolved.Output,
		Stdout:     stdoutBuf.String(),
		Stderr:     stderrBuf.String(),
		Duration:   time.Since(start),
	}
	if !r.cfg.KeepWorkDir {
		result.WorkDir = ""
		result.ConfigPath = ""
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case ctx.Err() != nil:
		return result, fmt.Errorf("job %s: %w", job.ID, ctx.Err())
	case errors.As(runErr, &exitErr):
		return result, &ExitError{Slicer: slicer.Name(), Code: exitErr.ExitCode(), Stderr: result.Stderr}
	default:
		return result, fmt.Errorf("job %s: run %s: %w", job.ID, binary, runErr)
	}

	r.logger.Debug("slice finished", "job_id", job.ID, "duration", result.Duration.String())
	return result, nil
}
