package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/messages"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error

	gotQuery string
}

func (m *mockSearchService) Search(_ context.Context, query string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	m.gotQuery = query
	return m.results, m.err
}

func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			Section: domain.Section{
				ID:       "sec-1",
				Citation: "Article 56",
				Heading:  "General provisions",
				Text:     "No manufacturer shall place a substance on the market...",
			},
			Slug:       "eu_reach_eurlex",
			SourceName: "REACH (EUR-Lex)",
			Score:      4.2,
			Highlights: []string{"place a substance on the market"},
		},
		{
			Section: domain.Section{
				ID:       "sec-2",
				Citation: "Article 57",
				Text:     "Substances meeting the criteria...",
			},
			Slug:       "eu_reach_eurlex",
			SourceName: "REACH (EUR-Lex)",
			Score:      3.1,
		},
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{})

	require.NotNil(t, view)
	assert.True(t, view.InputFocused())
	assert.False(t, view.Expanded())
	assert.Empty(t, view.Results())
}

func TestView_EnterSubmitsSearch(t *testing.T) {
	mock := &mockSearchService{results: testResults()}
	view := NewView(nil, nil, mock)
	view.SetDimensions(100, 40)
	view.SetQuery("authorisation")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg := cmd()
	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	assert.Equal(t, "authorisation", mock.gotQuery)
	assert.Len(t, completed.Results, 2)
}

func TestView_EnterEmptyQueryIsNoop(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, view.InputFocused())
}

func TestView_SearchCompleted(t *testing.T) {
	t.Run("results are listed", func(t *testing.T) {
		view := NewView(nil, nil, &mockSearchService{})
		view.SetDimensions(100, 40)

		view.Update(messages.SearchCompleted{Results: testResults()})

		assert.Len(t, view.Results(), 2)
		assert.False(t, view.InputFocused())
		assert.Equal(t, 0, view.SelectedIndex())

		rendered := view.View()
		assert.Contains(t, rendered, "Article 56")
		assert.Contains(t, rendered, "REACH (EUR-Lex)")
	})

	t.Run("error is shown", func(t *testing.T) {
		view := NewView(nil, nil, &mockSearchService{})
		view.SetDimensions(100, 40)

		view.Update(messages.SearchCompleted{Err: errors.New("index unavailable")})

		assert.Error(t, view.Err())
		assert.Contains(t, view.View(), "index unavailable")
	})
}

func TestView_ResultsNavigation(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{})
	view.SetDimensions(100, 40)
	view.Update(messages.SearchCompleted{Results: testResults()})

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_EnterExpandsSection(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{})
	view.SetDimensions(100, 40)
	view.Update(messages.SearchCompleted{Results: testResults()})

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, view.Expanded())
	assert.Contains(t, view.View(), "No manufacturer shall place")

	// Enter again collapses
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, view.Expanded())
}

func TestView_EscClosesExpandedThenMenu(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{})
	view.SetDimensions(100, 40)
	view.Update(messages.SearchCompleted{Results: testResults()})
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, view.Expanded())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, view.Expanded())
	assert.Nil(t, cmd)

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_NStartsNewSearch(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{})
	view.SetDimensions(100, 40)
	view.Update(messages.SearchCompleted{Results: testResults()})

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.True(t, view.InputFocused())
	assert.Empty(t, view.Query())
}

func TestView_PerformSearch_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := view.performSearch("cadmium")()

	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoSearchService)
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{})
	view.Update(messages.SearchCompleted{Results: testResults()})

	view.Reset()

	assert.True(t, view.InputFocused())
	assert.Empty(t, view.Results())
	assert.Empty(t, view.Query())
	assert.NoError(t, view.Err())
}
