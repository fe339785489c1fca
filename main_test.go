package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/particle-network/internal/config"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("particle-network", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, opts, err := loadConfig(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Backend != config.BackendWindow || cfg.ParticleCount != config.ParticleCount {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if opts.configPath != "" || opts.pickConfig {
		t.Errorf("opts = %+v, want zero", opts)
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backdrop.json")
	body := `{"backend": "terminal", "particle_count": 90, "debug": true}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := loadConfig(newFlagSet(), []string{"-config", path, "-particles", "30", "-threshold", "80"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Backend != config.BackendTerminal {
		t.Errorf("Backend = %q, want terminal from file", cfg.Backend)
	}
	if cfg.ParticleCount != 30 {
		t.Errorf("ParticleCount = %d, want 30 from flag", cfg.ParticleCount)
	}
	if cfg.ConnectionThreshold != 80 {
		t.Errorf("ConnectionThreshold = %g, want 80", cfg.ConnectionThreshold)
	}
	if !cfg.Debug {
		t.Error("Debug from file was reset by flag defaults")
	}
}

func TestLoadConfigRejectsInvalidFlags(t *testing.T) {
	_, _, err := loadConfig(newFlagSet(), []string{"-backend", "canvas"})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}

	if _, _, err := loadConfig(newFlagSet(), []string{"-nope"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestSetupLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backdrop.log")
	closer, err := setupLog(config.Default(), path)
	if err != nil {
		t.Fatalf("setupLog: %v", err)
	}
	defer log.SetOutput(os.Stderr)
	defer closer.Close()

	log.Print("hello")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}
