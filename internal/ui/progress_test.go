package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m ProgressModel, msg tea.Msg) (ProgressModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(ProgressModel)
	require.True(t, ok)
	return pm, cmd
}

func TestProgressAccumulatesBlocks(t *testing.T) {
	m := NewProgressModel("scanning", 100)

	m, _ = update(t, m, ProgressMsg{Blocks: 30})
	m, _ = update(t, m, ProgressMsg{Blocks: 30})

	assert.Contains(t, m.View(), "60/100 blocks")
}

func TestProgressClampsAtTotal(t *testing.T) {
	m := NewProgressModel("scanning", 100)

	m, _ = update(t, m, ProgressMsg{Blocks: 250})

	view := m.View()
	assert.Contains(t, view, "100/100 blocks")
	assert.Contains(t, view, "100.0%")
}

func TestProgressShowsFoundCount(t *testing.T) {
	m := NewProgressModel("scanning", 100)

	m, _ = update(t, m, FoundMsg{Total: 7})

	assert.Contains(t, m.View(), "7 found")
}

func TestProgressNote(t *testing.T) {
	m := NewProgressModel("scanning", 100)

	m, _ = update(t, m, NoteMsg{Text: "skipped blocks 10-19"})

	assert.Contains(t, m.View(), "skipped blocks 10-19")
}

func TestProgressDoneQuits(t *testing.T) {
	m := NewProgressModel("scanning", 100)

	m, cmd := update(t, m, DoneMsg{})

	require.NotNil(t, cmd)
	assert.Empty(t, m.View(), "finished progress leaves no residue")
}

func TestProgressKeyQuit(t *testing.T) {
	m := NewProgressModel("scanning", 100)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.NotNil(t, cmd)
}

func TestProgressZeroTotal(t *testing.T) {
	m := NewProgressModel("scanning", 0)

	m, _ = update(t, m, ProgressMsg{Blocks: 10})

	assert.Contains(t, m.View(), "0.0%")
}
