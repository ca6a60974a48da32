package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat prints wall-clock time with centiseconds ("14:32:01.45").
const logTimeFormat = "15:04:05.00"

// newLogger creates the CLI logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// progress times a command and its named phases.
// Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
	phases []phase
}

type phase struct {
	name string
	took time.Duration
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

// phase closes the phase that started at the previous call (or at
// creation) and logs its duration at debug level.
func (p *progress) phase(name string) {
	now := time.Now()
	ph := phase{name: name, took: now.Sub(p.last)}
	p.phases = append(p.phases, ph)
	p.last = now
	p.logger.Debug("phase", "name", name, "took", ph.took.Round(time.Microsecond))
}

// done logs msg with the total elapsed time, e.g. "Rendered scene.json (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or a
// logger that discards everything.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}
