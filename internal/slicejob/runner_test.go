package slicejob

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/me/slicecfg/internal/config"
	"github.com/me/slicecfg/internal/logging"
	"github.com/me/slicecfg/pkg/model"
)

// writeScript creates an executable shell script standing in for a slicer.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-slicer.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunner_Success(t *testing.T) {
	script := writeScript(t, `cp "$2" seen.json
echo "sliced $3"`)

	cfg := config.RunnerConfig{
		Binaries:    map[string]string{"SKEINFORGE": script},
		WorkDir:     t.TempDir(),
		KeepWorkDir: true,
	}
	r := NewRunner(cfg, logging.Discard())

	job := NewJob(*model.NewPreset(model.QualityHigh), "part.stl", "/out/part.gcode")
	res, err := r.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "sliced part.stl" {
		t.Errorf("Stdout = %q", res.Stdout)
	}

	data, err := os.ReadFile(filepath.Join(res.WorkDir, "seen.json"))
	if err != nil {
		t.Fatalf("read payload seen by slicer: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("payload JSON: %v", err)
	}
	if payload["slicer"] != "SKEINFORGE" || payload["path"] != "/out/part.gcode" {
		t.Errorf("payload = %v", payload)
	}
}

func TestRunner_RemovesWorkDir(t *testing.T) {
	script := writeScript(t, "exit 0")
	cfg := config.RunnerConfig{
		Binaries: map[string]string{"MIRACLEGRUE": script},
		WorkDir:  t.TempDir(),
	}
	r := NewRunner(cfg, logging.Discard())

	res, err := r.Run(context.Background(), NewJob(model.DefaultSlicerConfiguration(), "a.stl", "a.gcode"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.WorkDir != "" || res.ConfigPath != "" {
		t.Errorf("WorkDir = %q, ConfigPath = %q, want both empty after removal", res.WorkDir, res.ConfigPath)
	}
	entries, err := os.ReadDir(cfg.WorkDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("work root still holds %d entries", len(entries))
	}
}

func TestRunner_RelativePaths(t *testing.T) {
	// The engine copies the model to the path named in the payload.
	script := writeScript(t, `out=$(sed -n 's/.*"path": "\([^"]*\)".*/\1/p' "$2")
cat "$3" > "$out"`)

	caller := t.TempDir()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(caller); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	if err := os.WriteFile("part.stl", []byte("solid part"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.RunnerConfig{
		Binaries: map[string]string{"MIRACLEGRUE": script},
		WorkDir:  "work",
	}
	r := NewRunner(cfg, logging.Discard())

	res, err := r.Run(context.Background(), NewJob(model.DefaultSlicerConfiguration(), "part.stl", "part.gcode"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantOut := filepath.Join(caller, "part.gcode")
	if res.Output != wantOut {
		t.Errorf("Output = %q, want %q", res.Output, wantOut)
	}
	if res.Input != filepath.Join(caller, "part.stl") {
		t.Errorf("Input = %q", res.Input)
	}
	data, err := os.ReadFile(wantOut)
	if err != nil {
		t.Fatalf("output not written next to the caller: %v", err)
	}
	if string(data) != "solid part" {
		t.Errorf("output = %q, want %q", data, "solid part")
	}
	entries, err := os.ReadDir(filepath.Join(caller, "work"))
	if err != nil {
		t.Fatalf("relative work dir not created under the caller: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("work dir still holds %d entries", len(entries))
	}
}

func TestRunner_ExitError(t *testing.T) {
	script := writeScript(t, "echo 'bad mesh' >&2; exit 3")
	cfg := config.RunnerConfig{Binaries: map[string]string{"MIRACLEGRUE": script}, WorkDir: t.TempDir()}
	r := NewRunner(cfg, logging.Discard())

	_, err := r.Run(context.Background(), NewJob(model.DefaultSlicerConfiguration(), "a.stl", "a.gcode"))
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
	if !strings.Contains(exitErr.Stderr, "bad mesh") {
		t.Errorf("Stderr = %q", exitErr.Stderr)
	}
}

func TestRunner_NoBinary(t *testing.T) {
	r := NewRunner(config.RunnerConfig{Binaries: map[string]string{}}, logging.Discard())

	cfg := model.DefaultSlicerConfiguration()
	_, err := r.Run(context.Background(), NewJob(cfg, "a.stl", "a.gcode"))
	if !errors.Is(err, ErrNoBinary) {
		t.Errorf("error = %v, want ErrNoBinary", err)
	}

	cfg.SetSlicer(model.Slicer(7))
	_, err = r.Run(context.Background(), NewJob(cfg, "a.stl", "a.gcode"))
	if !errors.Is(err, ErrNoBinary) {
		t.Errorf("unknown slicer error = %v, want ErrNoBinary", err)
	}
}

func TestRunner_Cancelled(t *testing.T) {
	script := writeScript(t, "sleep 5")
	cfg := config.RunnerConfig{Binaries: map[string]string{"MIRACLEGRUE": script}, WorkDir: t.TempDir()}
	r := NewRunner(cfg, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, NewJob(model.DefaultSlicerConfiguration(), "a.stl", "a.gcode"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
