package cli

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/pipeline"
)

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"render", "frames", "compile", "validate", "inspect", "serve", "cache", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"scene", `{"viewBox":{"w":1,"h":1},"nodes":[]}`, kindScene},
		{"animation", `{"version":"viz-anim/1","tweens":[]}`, kindAnimation},
		{"tweens only", `{"tweens":[]}`, kindAnimation},
		{"script", `{"steps":[]}`, kindScript},
		{"not json", `nope`, kindScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectKind([]byte(tt.data)); got != tt.want {
				t.Errorf("detectKind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorLines(t *testing.T) {
	single := stderrors.New("boom")
	if got := errorLines(single); len(got) != 1 || got[0] != "boom" {
		t.Errorf("errorLines(single) = %v", got)
	}

	joined := errors.Join(errors.ErrCodeInvalidScene, []error{
		stderrors.New("first"),
		stderrors.New("second"),
	})
	got := errorLines(joined)
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("errorLines(joined) = %v, want [first second]", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, wantFull int
	}{
		{0, 10, 0},
		{5, 10, 5},
		{10, 10, 10},
		{3, 0, 0},
	}
	for _, tt := range tests {
		bar := progressBar(tt.done, tt.total, 10)
		if got := strings.Count(bar, "█"); got != tt.wantFull {
			t.Errorf("progressBar(%d, %d) filled = %d, want %d", tt.done, tt.total, got, tt.wantFull)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
			t.Errorf("progressBar(%d, %d) width = %d, want 10", tt.done, tt.total, got)
		}
	}
}

func TestFramesModelUpdate(t *testing.T) {
	m := NewFramesModel(3, nil)

	next, cmd := m.Update(frameMsg{index: 1, time: 50, path: "frame-0001.svg"})
	m = next.(FramesModel)
	if cmd != nil {
		t.Error("frame message should not quit")
	}
	if m.Done != 2 || m.Time != 50 || m.Last != "frame-0001.svg" {
		t.Errorf("after frame: %+v", m)
	}
	if !strings.Contains(m.View(), "2/3") {
		t.Errorf("View() missing counter: %q", m.View())
	}

	next, cmd = m.Update(framesDoneMsg{})
	m = next.(FramesModel)
	if cmd == nil || !m.finished || m.Err != nil {
		t.Errorf("after done: finished=%v err=%v cmd=%v", m.finished, m.Err, cmd)
	}
}

func TestFramesModelQuit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewFramesModel(10, cancel)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(FramesModel)
	if cmd == nil {
		t.Error("q should quit")
	}
	if ctx.Err() == nil {
		t.Error("q should cancel the export")
	}
	if !stderrors.Is(m.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", m.Err)
	}

	// A late done message keeps the cancellation error.
	next, _ = m.Update(framesDoneMsg{err: stderrors.New("late")})
	if m = next.(FramesModel); !stderrors.Is(m.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", m.Err)
	}
}

func TestStatsLine(t *testing.T) {
	stats := pipeline.Stats{NodeCount: 3, EdgeCount: 2, RenderTime: 1500 * time.Microsecond}

	fresh := statsLine(stats, false)
	for _, want := range []string{"3 nodes", "2 edges", "1.5ms"} {
		if !strings.Contains(fresh, want) {
			t.Errorf("statsLine() = %q, missing %q", fresh, want)
		}
	}
	if strings.Contains(fresh, "skipped") {
		t.Errorf("statsLine() = %q, unexpected skipped count", fresh)
	}

	stats.Patch.Skipped = 4
	cached := statsLine(stats, true)
	if !strings.Contains(cached, "cached") || !strings.Contains(cached, "4 skipped") {
		t.Errorf("statsLine(cached) = %q", cached)
	}
}
