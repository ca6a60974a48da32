package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", LogInfo, func(l *log.Logger) { l.Info("x") }, true},
		{"debug at info", LogInfo, func(l *log.Logger) { l.Debug("x") }, false},
		{"debug at debug", LogDebug, func(l *log.Logger) { l.Debug("x") }, true},
		{"info at warn", LogWarn, func(l *log.Logger) { l.Info("x") }, false},
		{"warn at warn", LogWarn, func(l *log.Logger) { l.Warn("x") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")

	if got := buf.String(); strings.Contains(got, "hidden") || !strings.Contains(got, "shown") {
		t.Errorf("log output = %q", got)
	}
}

func TestProgressPhases(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogDebug))

	prog.phase("load")
	prog.phase("render")
	prog.done("Rendered scene.json")

	if len(prog.phases) != 2 || prog.phases[0].name != "load" || prog.phases[1].name != "render" {
		t.Errorf("phases = %+v", prog.phases)
	}
	out := buf.String()
	for _, want := range []string{"name=load", "name=render", "Rendered scene.json ("} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %q", want, out)
		}
	}
}

func TestProgressPhasesHiddenAtInfo(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.phase("load")
	if strings.Contains(buf.String(), "phase") {
		t.Errorf("phase logged at info level: %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext did not return the attached logger")
	}

	fallback := loggerFromContext(context.Background())
	if fallback == nil {
		t.Fatal("loggerFromContext() = nil without a logger")
	}
	fallback.Error("discarded")
	if buf.Len() != 0 {
		t.Error("fallback logger wrote to the custom logger's writer")
	}
}
