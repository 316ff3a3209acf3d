package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/me/slicecfg/pkg/model"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds configuration for the slicecfg server.
type ServerConfig struct {
	Addr      string // Listen address (default ":8080")
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: text, json
	DBPath    string // SQLite database path (default ~/.slicecfg/profiles.db, ":memory:" for testing)
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// RunnerConfig tells the slice runner where the engine binaries live.
//
//	binaries:
//	  MIRACLEGRUE: /usr/local/bin/miracle_grue
//	  SKEINFORGE: /opt/skeinforge/skeinforge.sh
//	work_dir: /tmp/slicecfg
type RunnerConfig struct {
	Binaries    map[string]string `yaml:"binaries"`
	WorkDir     string            `yaml:"work_dir"`
	KeepWorkDir bool              `yaml:"keep_work_dir"`
}

// envBinary is the environment variable overriding the binary for an engine.
func envBinary(s model.Slicer) string {
	return "SLICECFG_" + s.Name()
}

// LoadRunnerConfig reads a runner config file. An empty path yields an empty
// config. SLICECFG_MIRACLEGRUE and SLICECFG_SKEINFORGE override the file.
func LoadRunnerConfig(path string) (RunnerConfig, error) {
	cfg := RunnerConfig{Binaries: map[string]string{}}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read runner config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse runner config %s: %w", path, err)
		}
		if cfg.Binaries == nil {
			cfg.Binaries = map[string]string{}
		}
	}

	// Normalise keys so "miraclegrue" and "MIRACLEGRUE" both resolve.
	normalised := make(map[string]string, len(cfg.Binaries))
	for k, v := range cfg.Binaries {
		normalised[strings.ToUpper(k)] = v
	}
	cfg.Binaries = normalised

	for _, s := range []model.Slicer{model.SlicerMiracleGrue, model.SlicerSkeinforge} {
		if v := os.Getenv(envBinary(s)); v != "" {
			cfg.Binaries[s.Name()] = v
		}
	}
	return cfg, nil
}

// Binary returns the configured binary for an engine, or "" when none is set.
func (c RunnerConfig) Binary(s model.Slicer) string {
	name := s.Name()
	if name == "" {
		return ""
	}
	return c.Binaries[name]
}
