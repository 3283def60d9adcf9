package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg advances the scanned-block counter.
type ProgressMsg struct{ Blocks uint64 }

// FoundMsg reports the number of matching transactions collected so far.
type FoundMsg struct{ Total int }

// NoteMsg replaces the status note (e.g. after a skipped batch).
type NoteMsg struct{ Text string }

// DoneMsg ends the progress display.
type DoneMsg struct{}

type progressTickMsg struct{}

const progressBarWidth = 40

// ProgressModel is the Bubble Tea model shown during a long block scan.
type ProgressModel struct {
	Label string
	Total uint64

	scanned uint64
	found   int
	note    string
	frame   int
	done    bool
}

// NewProgressModel creates a progress display for scanning total blocks.
func NewProgressModel(label string, total uint64) ProgressModel {
	return ProgressModel{Label: label, Total: total}
}

func progressTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

func (m ProgressModel) Init() tea.Cmd { return progressTick() }

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		}
	case progressTickMsg:
		if m.done {
			return m, nil
		}
		m.frame++
		return m, progressTick()
	case ProgressMsg:
		m.scanned += msg.Blocks
		if m.scanned > m.Total {
			m.scanned = m.Total
		}
	case FoundMsg:
		m.found = msg.Total
	case NoteMsg:
		m.note = msg.Text
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	if m.done {
		return ""
	}

	filled := 0
	if m.Total > 0 {
		filled = int(m.scanned * progressBarWidth / m.Total)
	}
	bar := StyleAccent.Render(strings.Repeat("█", filled)) +
		StyleMeta.Render(strings.Repeat("░", progressBarWidth-filled))

	pct := 0.0
	if m.Total > 0 {
		pct = float64(m.scanned) / float64(m.Total) * 100
	}

	frame := StyleAccent.Render(spinnerFrames[m.frame%len(spinnerFrames)])
	line := fmt.Sprintf("%s %s  %s %5.1f%%  %s",
		frame, m.Label, bar, pct,
		Meta(fmt.Sprintf("%d/%d blocks · %d found", m.scanned, m.Total, m.found)))

	if m.note != "" {
		line += "\n" + Meta(m.note)
	}
	return line + "\n"
}
