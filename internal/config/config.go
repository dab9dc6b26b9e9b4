// SPDX-License-Identifier: EPL-2.0

// Package config loads the command line configuration. Every flag falls
// back to a PHONOLYZE_* environment variable, then to its default.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrNoInput      = errors.New("no audio file given")
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Mix modes for folding a multichannel file down to the analysed signal.
const (
	MixLeft    = "left"
	MixAverage = "average"
)

// Config holds the runtime configuration.
type Config struct {
	Input string // audio file path or URL

	// Analysis
	WindowSize int
	HopSize    int
	TopSeconds float64 // 0 analyses the whole file
	Mix        string
	DebugWAV   string

	// Playback
	Play      bool
	Format    string // auto, f32 or s8
	LatencyMS int
	BaseURL   string

	// Process
	MetricsAddr string
	LogLevel    string
	Headless    bool
}

// Load parses args (without the program name). Environment variables
// provide the defaults flags override.
func Load(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("phonolyze", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.IntVar(&cfg.WindowSize, "window-size", envInt("PHONOLYZE_WINDOW_SIZE", 2048), "STFT window size in samples")
	fs.IntVar(&cfg.HopSize, "hop-size", envInt("PHONOLYZE_HOP_SIZE", 2048), "STFT hop size in samples")
	fs.Float64Var(&cfg.TopSeconds, "top", envFloat("PHONOLYZE_TOP", 0), "analyse only the first N seconds (0 = all)")
	fs.StringVar(&cfg.Mix, "mix", envStr("PHONOLYZE_MIX", MixLeft), "channel fold for analysis: left or average")
	fs.StringVar(&cfg.DebugWAV, "debug-wav", envStr("PHONOLYZE_DEBUG_WAV", ""), "write a decimated WAV of the analysed signal")
	fs.BoolVar(&cfg.Play, "play", envBool("PHONOLYZE_PLAY", false), "start playback immediately")
	fs.StringVar(&cfg.Format, "format", envStr("PHONOLYZE_FORMAT", "auto"), "output sample format: auto, f32 or s8")
	fs.IntVar(&cfg.LatencyMS, "latency-ms", envInt("PHONOLYZE_LATENCY_MS", 200), "player queue latency in milliseconds")
	fs.StringVar(&cfg.BaseURL, "base-url", envStr("PHONOLYZE_BASE_URL", ""), "origin relative paths are fetched from")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", envStr("PHONOLYZE_METRICS_ADDR", ""), "serve prometheus metrics on this address")
	fs.StringVar(&cfg.LogLevel, "log-level", envStr("PHONOLYZE_LOG_LEVEL", "info"), "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.Headless, "headless", envBool("PHONOLYZE_HEADLESS", false), "run without the terminal view")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	cfg.Input = envStr("PHONOLYZE_INPUT", "")
	if fs.NArg() > 0 {
		cfg.Input = fs.Arg(0)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.Input == "":
		return ErrNoInput
	case c.WindowSize <= 0:
		return fmt.Errorf("%w: window size %d", ErrInvalidValue, c.WindowSize)
	case c.HopSize <= 0:
		return fmt.Errorf("%w: hop size %d", ErrInvalidValue, c.HopSize)
	case c.LatencyMS < 0:
		return fmt.Errorf("%w: latency %dms", ErrInvalidValue, c.LatencyMS)
	case c.TopSeconds < 0:
		return fmt.Errorf("%w: top %g", ErrInvalidValue, c.TopSeconds)
	case c.Mix != MixLeft && c.Mix != MixAverage:
		return fmt.Errorf("%w: mix %q", ErrInvalidValue, c.Mix)
	}

	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}
