// Package cli implements the glfm command-line interface.
//
// The CLI is built using cobra. Every command reads the configuration from
// glfm.toml (or --config) with GLFM_* environment overrides, and logs
// through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - build: unify the sources into the catalog
//   - families: resolve family genealogy and write the family maps
//   - validate: check the persisted catalog
//   - pos-stats: count parts of speech in a Wiktextract dump
//   - serve: read-only HTTP API over the persisted data
//   - publish: upsert the catalog into MongoDB
//   - cache: manage the genealogy lookup cache
//   - config: write or show the configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lahtis/glfm/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Unified 7912 records (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// stageLogger reports pipeline stages at debug level.
type stageLogger struct {
	logger *log.Logger
}

func (s stageLogger) OnStageStart(_ context.Context, stage string) {
	s.logger.Debug("stage started", "stage", stage)
}

func (s stageLogger) OnStageComplete(_ context.Context, stage string, items int, d time.Duration, err error) {
	if err != nil {
		s.logger.Debug("stage failed", "stage", stage, "duration", d.Round(time.Millisecond), "error", err)
		return
	}
	s.logger.Debug("stage done", "stage", stage, "items", items, "duration", d.Round(time.Millisecond))
}

var _ observability.StageHooks = stageLogger{}
