package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			Section:    domain.Section{ID: "sec-1", Citation: "Article 56", Text: "No manufacturer shall..."},
			Slug:       "eu_reach_eurlex",
			SourceName: "REACH (EUR-Lex)",
			Score:      4.2,
			Highlights: []string{"matched snippet"},
		},
		{
			Section: domain.Section{ID: "sec-2", Heading: "Restricted substances"},
			Slug:    "eu_reach_eurlex",
			Score:   3.0,
		},
		{
			Section: domain.Section{ID: "sec-3"},
			Slug:    "us_tsca_inventory",
			Score:   1.5,
		},
	}
}

func TestNewResultList(t *testing.T) {
	list := NewResultList(nil)

	require.NotNil(t, list)
	assert.True(t, list.IsEmpty())
	assert.Equal(t, 0, list.Count())
	assert.Nil(t, list.SelectedResult())
}

func TestResultList_SetResults(t *testing.T) {
	list := NewResultList(nil)
	list.selected = 2

	list.SetResults(testResults())

	assert.Equal(t, 3, list.Count())
	assert.Equal(t, 0, list.Selected())
	assert.False(t, list.IsEmpty())
}

func TestResultList_Navigation(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(testResults())

	list.MoveDown()
	assert.Equal(t, 1, list.Selected())

	list.MoveDown()
	list.MoveDown() // boundary
	assert.Equal(t, 2, list.Selected())

	list.MoveUp()
	assert.Equal(t, 1, list.Selected())
}

func TestResultList_Update_Keys(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(testResults())

	list.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, list.Selected())
}

func TestResultList_SelectedResult(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(testResults())

	result := list.SelectedResult()

	require.NotNil(t, result)
	assert.Equal(t, "Article 56", result.Section.Citation)
}

func TestResultList_SetSelected_Bounds(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(testResults())

	list.SetSelected(2)
	assert.Equal(t, 2, list.Selected())

	list.SetSelected(10)
	assert.Equal(t, 2, list.Selected())

	list.SetSelected(-1)
	assert.Equal(t, 2, list.Selected())
}

func TestResultList_View(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		list := NewResultList(nil)
		assert.Contains(t, list.View(), "No results")
	})

	t.Run("falls back from citation to heading to ID", func(t *testing.T) {
		list := NewResultList(nil)
		list.SetDimensions(100, 30)
		list.SetResults(testResults())

		rendered := list.View()
		assert.Contains(t, rendered, "Results (3)")
		assert.Contains(t, rendered, "Article 56")
		assert.Contains(t, rendered, "Restricted substances")
		assert.Contains(t, rendered, "sec-3")
	})

	t.Run("uses highlight as snippet", func(t *testing.T) {
		list := NewResultList(nil)
		list.SetDimensions(100, 30)
		list.SetResults(testResults())

		assert.Contains(t, list.View(), "matched snippet")
	})
}

func TestResultList_SetDimensions(t *testing.T) {
	list := NewResultList(nil)

	list.SetDimensions(120, 30)

	assert.Equal(t, 120, list.Width())
	assert.Equal(t, 30, list.Height())
}
