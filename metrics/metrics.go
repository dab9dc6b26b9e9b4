// SPDX-License-Identifier: EPL-2.0

// Package metrics exposes playback and decode counters to Prometheus.
//
// Every collector here is safe to touch from the real-time output
// callback: Inc and Set on a prebuilt collector are single atomic ops.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Gauges
var (
	PlayerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "phonolyze_player_state",
		Help: "Player state: 0 idle, 1 loading, 2 draining",
	})
)

// Counters
var (
	Underruns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phonolyze_underruns_total",
		Help: "Output buffers that ran out of queued samples",
	})
	QueueFullRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phonolyze_queue_full_retries_total",
		Help: "Loader pushes retried because the sample queue was full",
	})
	TransientDecodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phonolyze_transient_decode_errors_total",
		Help: "Packets skipped after a recoverable codec error",
	})
	DecodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phonolyze_decode_errors_total",
		Help: "Fatal decode failures by stage",
	}, []string{"stage"})
	FilesLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phonolyze_files_loaded_total",
		Help: "Files streamed to the output to end of stream",
	})
)

// Decode error stages.
const (
	StageOpen   = "open"
	StageDecode = "decode"
)

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
