package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/messages"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/styles"
)

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()

	view := NewView(s)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.items, 8)
	assert.Equal(t, 0, view.selected)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	// Should create default styles
	assert.NotNil(t, view.styles)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil)

	cmd := view.Init()

	assert.Nil(t, cmd)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	msg := tea.WindowSizeMsg{Width: 100, Height: 50}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_KeyMsg_Navigate(t *testing.T) {
	view := NewView(nil)

	// Down moves towards the last item
	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	view.Update(down)
	assert.Equal(t, 1, view.selected)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, view.selected)

	// Up moves back
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, view.selected)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.selected)

	// Boundary at the top
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.selected)
}

func TestView_Update_KeyMsg_BoundaryBottom(t *testing.T) {
	view := NewView(nil)
	view.selected = len(view.items) - 1

	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, len(view.items)-1, view.selected)
}

func TestView_Update_Enter_SelectsView(t *testing.T) {
	view := NewView(nil)
	view.selected = 0 // Diagnose

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg := cmd()
	changed, ok := msg.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewDiagnose, changed.View)
}

func TestView_Update_Enter_QuitItem(t *testing.T) {
	view := NewView(nil)
	view.selected = len(view.items) - 1 // Quit

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_Update_Q_Quits(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil)

	// Not ready yet
	assert.Contains(t, view.View(), "Initialising")

	view.SetDimensions(100, 40)
	rendered := view.View()

	assert.Contains(t, rendered, "Regwatch")
	assert.Contains(t, rendered, "Diagnose")
	assert.Contains(t, rendered, "Compare Markets")
	assert.Contains(t, rendered, "Search Regulations")
	assert.Contains(t, rendered, "History")
	assert.Contains(t, rendered, "Quit")
}

func TestView_Selected(t *testing.T) {
	view := NewView(nil)
	view.selected = 3

	assert.Equal(t, 3, view.Selected())
}
