package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Progress styles
var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// barWidth is the width of the frame progress bar in cells.
const barWidth = 40

// =============================================================================
// FramesModel - Frame export progress
// =============================================================================

// frameMsg reports one written frame.
type frameMsg struct {
	index int
	time  float64
	path  string
}

// framesDoneMsg reports the end of the export.
type framesDoneMsg struct {
	err error
}

// FramesModel is the bubbletea model that shows frame export progress.
type FramesModel struct {
	Total int
	Done  int
	Last  string
	Time  float64
	Err   error

	cancel   context.CancelFunc
	start    time.Time
	finished bool
}

// NewFramesModel creates a progress model for total frames. cancel is
// called when the user quits early.
func NewFramesModel(total int, cancel context.CancelFunc) FramesModel {
	return FramesModel{Total: total, cancel: cancel, start: time.Now()}
}

func (m FramesModel) Init() tea.Cmd {
	return nil
}

func (m FramesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			m.Err = context.Canceled
			m.finished = true
			return m, tea.Quit
		}
	case frameMsg:
		m.Done = msg.index + 1
		m.Last = msg.path
		m.Time = msg.time
	case framesDoneMsg:
		if m.Err == nil {
			m.Err = msg.err
		}
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m FramesModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Exporting frames"))
	b.WriteString("\n\n  ")
	b.WriteString(progressBar(m.Done, m.Total, barWidth))
	b.WriteString(" ")
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%d/%d", m.Done, m.Total)))
	b.WriteString("\n")
	if m.Last != "" {
		b.WriteString("  ")
		b.WriteString(StyleDim.Render(fmt.Sprintf("t=%gms %s %s", m.Time, iconArrow, m.Last)))
		b.WriteString("\n")
	}
	if !m.finished {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("  q quit"))
		b.WriteString("\n")
	}
	return b.String()
}

// progressBar renders done/total as a fixed-width bar.
func progressBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = min(width, done*width/total)
	}
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
