package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/iburimskiy/particle-network/internal/config"
	"github.com/iburimskiy/particle-network/internal/game"
	"github.com/iburimskiy/particle-network/internal/particles"
	"github.com/iburimskiy/particle-network/internal/soundtrack"
	"github.com/iburimskiy/particle-network/internal/term"
)

type options struct {
	configPath string
	pickConfig bool
	logPath    string
}

// loadConfig resolves the config file (flag or dialog) and applies the flags
// that were set explicitly on top of it.
func loadConfig(fs *flag.FlagSet, args []string) (config.Config, options, error) {
	var (
		opts       options
		backend    string
		count      int
		threshold  float64
		track      string
		fullscreen bool
		debug      bool
	)
	fs.StringVar(&opts.configPath, "config", "", "JSON config file")
	fs.BoolVar(&opts.pickConfig, "pick-config", false, "choose the config file in a dialog")
	fs.StringVar(&opts.logPath, "log", "", "log file (terminal backend logs nowhere by default)")
	fs.StringVar(&backend, "backend", config.BackendWindow, "window or terminal")
	fs.IntVar(&count, "particles", config.ParticleCount, "number of particles")
	fs.Float64Var(&threshold, "threshold", config.ConnectionThreshold, "connection distance")
	fs.StringVar(&track, "soundtrack", "", "ambient wav, mp3 or flac file looped under the backdrop")
	fs.BoolVar(&fullscreen, "fullscreen", false, "start fullscreen")
	fs.BoolVar(&debug, "debug", false, "show the stats overlay")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, opts, err
	}

	if opts.pickConfig && opts.configPath == "" {
		path, err := config.Pick()
		if err != nil {
			return config.Config{}, opts, err
		}
		opts.configPath = path
	}

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, opts, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = backend
		case "particles":
			cfg.ParticleCount = count
		case "threshold":
			cfg.ConnectionThreshold = threshold
		case "soundtrack":
			cfg.Soundtrack = track
		case "fullscreen":
			cfg.Fullscreen = fullscreen
		case "debug":
			cfg.Debug = debug
		}
	})
	return cfg, opts, cfg.Validate()
}

func setupLog(cfg config.Config, path string) (io.Closer, error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		log.SetOutput(f)
		return f, nil
	}
	// tcell owns the terminal
	if cfg.Backend == config.BackendTerminal {
		log.SetOutput(io.Discard)
	}
	return nil, nil
}

func run() error {
	cfg, opts, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	logFile, err := setupLog(cfg, opts.logPath)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// left nil unless a track actually plays, so hosts never see a typed nil
	var music game.Track
	if cfg.Soundtrack != "" {
		track, err := soundtrack.Open(cfg.Soundtrack)
		if err == nil {
			err = track.Play()
			if err != nil {
				_ = track.Close()
			}
		}
		if err != nil {
			// non-fatal, the backdrop runs silent
			log.Printf("Soundtrack disabled: %v", err)
		} else {
			defer track.Close()
			music = track
		}
	}

	src := particles.NewSource()
	log.Printf("Starting %s backdrop with %d particles", cfg.Backend, cfg.ParticleCount)

	switch cfg.Backend {
	case config.BackendTerminal:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		var t term.Track
		if music != nil {
			t = music
		}
		return term.Run(ctx, cfg, src, t)
	default:
		return game.Run(cfg, src, music)
	}
}

func main() {
	if err := run(); err != nil {
		// the terminal backend may have discarded the logger
		fmt.Fprintln(os.Stderr, "particle-network:", err)
		os.Exit(1)
	}
}
