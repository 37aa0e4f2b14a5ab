package settings

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

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error

	gotMode     domain.DiagnosisMode
	gotProvider domain.AIProvider
}

func (m *mockSettingsService) Get(_ context.Context) (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings != nil {
		return m.settings, nil
	}
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *mockSettingsService) GetDiagnosisMode(_ context.Context) domain.DiagnosisMode {
	return domain.ModeOffline
}

func (m *mockSettingsService) SetDiagnosisMode(_ context.Context, mode domain.DiagnosisMode) error {
	m.gotMode = mode
	return m.err
}

func (m *mockSettingsService) GetAIProvider(_ context.Context) domain.AIProvider {
	return domain.AIProviderOllama
}

func (m *mockSettingsService) SetAIProvider(_ context.Context, provider domain.AIProvider) error {
	m.gotProvider = provider
	return m.err
}

func (m *mockSettingsService) SetAPIKey(_ context.Context, _, _ string) error { return m.err }

func (m *mockSettingsService) GetAPIKey(_ context.Context, _ string) string { return "" }

func (m *mockSettingsService) SetLiteratureEngine(_ context.Context, _ string) error { return m.err }

func (m *mockSettingsService) Validate(_ context.Context) error { return m.err }

func TestView_Init_LoadsSettings(t *testing.T) {
	view := NewView(nil, &mockSettingsService{})

	cmd := view.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, domain.ModeOffline, loaded.Settings.Mode)
}

func TestView_SettingsLoaded_Renders(t *testing.T) {
	view := NewView(nil, &mockSettingsService{})
	view.SetDimensions(100, 40)

	settings := &domain.AppSettings{
		Mode: domain.ModeDeep,
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderAnthropic,
			Model:    "claude-3-5-sonnet-latest",
			APIKey:   "sk-ant-verylongsecretkey",
		},
	}
	view.Update(messages.SettingsLoaded{Settings: settings})

	rendered := view.View()
	assert.Contains(t, rendered, "deep")
	assert.Contains(t, rendered, "anthropic")
	assert.Contains(t, rendered, "claude-3-5-sonnet-latest")
	// Key must be masked
	assert.NotContains(t, rendered, "sk-ant-verylongsecretkey")
	assert.Contains(t, rendered, "sk-a...tkey")
}

func TestView_UnconfiguredLLM(t *testing.T) {
	view := NewView(nil, &mockSettingsService{})
	view.SetDimensions(100, 40)

	s := domain.DefaultAppSettings()
	view.Update(messages.SettingsLoaded{Settings: &s})

	assert.Contains(t, view.View(), "Not configured")
}

func TestView_CycleMode(t *testing.T) {
	mock := &mockSettingsService{}
	view := NewView(nil, mock)
	s := domain.DefaultAppSettings() // offline
	view.Update(messages.SettingsLoaded{Settings: &s})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	require.NotNil(t, cmd)

	msg := cmd()
	saved, ok := msg.(messages.SettingsSaved)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.Equal(t, domain.ModeAssisted, mock.gotMode)
}

func TestView_CycleMode_WrapsAround(t *testing.T) {
	mock := &mockSettingsService{settings: &domain.AppSettings{Mode: domain.ModeDeep}}
	view := NewView(nil, mock)
	view.Update(messages.SettingsLoaded{Settings: mock.settings})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, domain.ModeOffline, mock.gotMode)
}

func TestView_CycleMode_SaveError(t *testing.T) {
	mock := &mockSettingsService{err: errors.New("deep mode requires a configured LLM")}
	view := NewView(nil, mock)
	s := domain.AppSettings{Mode: domain.ModeAssisted}
	view.settings = &s
	view.loaded = true

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	require.NotNil(t, cmd)

	view.Update(cmd())

	assert.Contains(t, view.Message(), "deep mode requires")
}

func TestView_CycleProvider(t *testing.T) {
	mock := &mockSettingsService{
		settings: &domain.AppSettings{
			LLM: domain.LLMSettings{Provider: domain.AIProviderOllama},
		},
	}
	view := NewView(nil, mock)
	view.Update(messages.SettingsLoaded{Settings: mock.settings})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, domain.AIProviderOpenAI, mock.gotProvider)
}

func TestView_SettingsSaved_Reloads(t *testing.T) {
	view := NewView(nil, &mockSettingsService{})
	s := domain.DefaultAppSettings()
	view.Update(messages.SettingsLoaded{Settings: &s})

	_, cmd := view.Update(messages.SettingsSaved{})

	assert.Equal(t, "Saved", view.Message())
	require.NotNil(t, cmd)
	_, ok := cmd().(messages.SettingsLoaded)
	assert.True(t, ok)
}

func TestView_LoadSettings_NoService(t *testing.T) {
	view := NewView(nil, nil)

	msg := view.loadSettings()()

	loaded, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrNoSettingsService)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := NewView(nil, &mockSettingsService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskAPIKey(""))
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-v...ikey", maskAPIKey("sk-verysecretapikey"))
}
