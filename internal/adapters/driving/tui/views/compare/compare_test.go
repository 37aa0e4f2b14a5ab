package compare

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

// mockComparisonService is a mock implementation of driving.ComparisonService.
type mockComparisonService struct {
	comparison *domain.MarketComparison
	err        error

	gotChemical string
}

func (m *mockComparisonService) Compare(_ context.Context, name string, _ []domain.Market) (*domain.MarketComparison, error) {
	m.gotChemical = name
	if m.err != nil {
		return nil, m.err
	}
	if m.comparison != nil {
		return m.comparison, nil
	}
	return &domain.MarketComparison{Chemical: domain.Chemical{Name: name}}, nil
}

func (m *mockComparisonService) DiffRevisions(_ context.Context, slug string) (*domain.RevisionDiff, error) {
	return &domain.RevisionDiff{Slug: slug}, m.err
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &mockComparisonService{})

	require.NotNil(t, view)
	assert.True(t, view.InputFocused())
	assert.Nil(t, view.Comparison())
}

func TestView_EnterRunsComparison(t *testing.T) {
	mock := &mockComparisonService{
		comparison: &domain.MarketComparison{
			Chemical: domain.Chemical{Name: "cadmium"},
			Rows: []domain.ComparisonRow{
				{Market: domain.MarketEU, Status: domain.StatusRestricted, Basis: "REACH Annex XVII entry 23"},
				{Market: domain.MarketTW, Status: domain.StatusListed, Basis: "TCSI"},
				{Market: domain.MarketUS, Status: domain.StatusListed, Basis: "TSCA Inventory"},
			},
			Summary: "Restricted in the EU.",
		},
	}
	view := NewView(nil, nil, mock)
	view.SetDimensions(120, 40)
	view.input.SetValue("cadmium")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg := cmd()
	completed, ok := msg.(messages.ComparisonCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	assert.Equal(t, "cadmium", mock.gotChemical)
	assert.Len(t, completed.Comparison.Rows, 3)
}

func TestView_ComparisonCompleted_RendersTable(t *testing.T) {
	view := NewView(nil, nil, &mockComparisonService{})
	view.SetDimensions(120, 40)
	view.focusInput = false

	comparison := &domain.MarketComparison{
		Chemical: domain.Chemical{Name: "cadmium", CASNumbers: []string{"7440-43-9"}},
		Rows: []domain.ComparisonRow{
			{Market: domain.MarketEU, Status: domain.StatusRestricted, Basis: "REACH Annex XVII entry 23"},
			{Market: domain.MarketUS, Status: domain.StatusListed, Basis: "TSCA Inventory"},
		},
		Summary: "Restricted in the EU.",
	}
	view.Update(messages.ComparisonCompleted{Comparison: comparison})

	require.NotNil(t, view.Comparison())

	rendered := view.View()
	assert.Contains(t, rendered, "cadmium")
	assert.Contains(t, rendered, "RESTRICTED")
	assert.Contains(t, rendered, "TSCA Inventory")
	assert.Contains(t, rendered, "Strictest: EU (RESTRICTED)")
	assert.Contains(t, rendered, "Restricted in the EU.")
}

func TestView_ComparisonCompleted_Error(t *testing.T) {
	view := NewView(nil, nil, &mockComparisonService{})
	view.SetDimensions(120, 40)
	view.focusInput = false

	view.Update(messages.ComparisonCompleted{Err: errors.New("store closed")})

	assert.Error(t, view.Err())
	assert.True(t, view.InputFocused())
}

func TestView_PerformComparison_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := view.performComparison("cadmium")()

	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoComparisonService)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := NewView(nil, nil, &mockComparisonService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, nil, &mockComparisonService{})
	view.focusInput = false
	view.comparison = &domain.MarketComparison{}
	view.err = errors.New("stale")

	view.Reset()

	assert.True(t, view.InputFocused())
	assert.Nil(t, view.Comparison())
	assert.NoError(t, view.Err())
}
