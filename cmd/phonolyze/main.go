// SPDX-License-Identifier: EPL-2.0

// Command phonolyze analyses an audio file, optionally plays it, and
// shows the spectrum under the playhead in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"github.com/ik5/phonolyze"
	"github.com/ik5/phonolyze/decoder"
	"github.com/ik5/phonolyze/internal/config"
	"github.com/ik5/phonolyze/internal/logging"
	"github.com/ik5/phonolyze/internal/ui"
	"github.com/ik5/phonolyze/metrics"
	"github.com/ik5/phonolyze/output"
	"github.com/ik5/phonolyze/position"
	"github.com/ik5/phonolyze/stream"
)

// outputChannels is fixed; mono files are centred by the consumer.
const outputChannels = 2

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("usage: phonolyze [flags] <file|url>: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	decOpts := decoder.Options{BaseURL: cfg.BaseURL, Logger: logger}

	a, err := analyze(ctx, cfg, decOpts)
	if err != nil {
		return err
	}
	logger.Info("analysis done",
		zap.String("path", cfg.Input),
		zap.Int("frames", len(a.Matrix)),
		zap.Float64("seconds", a.Duration()),
	)

	if cfg.DebugWAV != "" {
		if err := decoder.WriteDebugWAV(cfg.DebugWAV, a.Signal, a.SampleRate); err != nil {
			return err
		}
		logger.Info("debug wav written", zap.String("path", cfg.DebugWAV))
	}

	tracker := position.NewTracker()
	tracker.SetLength(a.Duration())

	sess, err := output.Open(output.Config{
		SampleRate: a.SampleRate,
		Channels:   outputChannels,
		Format:     cfg.Format,
		LatencyMS:  cfg.LatencyMS,
	}, stream.Options{
		Decoder: decOpts,
		Tracker: tracker,
		Logger:  logger,
		OnError: func(p string, err error) {
			logger.Error("playback failed", zap.String("path", p), zap.Error(err))
		},
	})
	switch {
	case errors.Is(err, output.ErrUnsupportedFormat):
		return err
	case err != nil:
		logger.Warn("no audio output, continuing without playback", zap.Error(err))
	default:
		defer sess.Close()
	}

	if cfg.Play && sess != nil {
		if err := sess.Play(ctx, cfg.Input); err != nil {
			return err
		}
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	if cfg.Headless {
		<-ctx.Done()
		logger.Info("shutting down")
		return nil
	}

	var status ui.Status
	if sess != nil {
		status = sess
	}

	m := ui.NewModel(path.Base(cfg.Input), tracker, status, ui.Analysis{
		Matrix:     a.Matrix,
		WindowSize: a.WindowSize,
		HopSize:    a.HopSize,
		SampleRate: a.SampleRate,
	})
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}

	return nil
}

// analyze decodes and transforms the input with a progress bar on
// stderr.
func analyze(ctx context.Context, cfg config.Config, decOpts decoder.Options) (*phonolyze.Analysis, error) {
	p := mpb.NewWithContext(ctx, mpb.WithWidth(64), mpb.WithOutput(os.Stderr))
	var bar *mpb.Bar

	opts := phonolyze.Options{
		Decoder:    decOpts,
		WindowSize: cfg.WindowSize,
		HopSize:    cfg.HopSize,
		Mix:        cfg.Mix == config.MixAverage,
		Progress: func(_, total int) {
			if bar == nil {
				bar = p.AddBar(int64(total),
					mpb.PrependDecorators(
						decor.Name("Analysing: "),
						decor.CountersNoUnit("%d / %d"),
					),
					mpb.AppendDecorators(
						decor.Percentage(),
						decor.AverageETA(decor.ET_STYLE_GO),
					),
				)
			}
			bar.Increment()
		},
	}
	if cfg.TopSeconds > 0 {
		top := float32(cfg.TopSeconds)
		opts.MaxSeconds = &top
	}

	a, err := phonolyze.Analyze(ctx, cfg.Input, opts)
	if bar != nil && !bar.Completed() {
		bar.Abort(false)
	}
	p.Wait()

	return a, err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
