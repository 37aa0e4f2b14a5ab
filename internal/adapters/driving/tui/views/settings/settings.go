// Package settings provides the settings view for the TUI.
//
// The view is read-mostly: it shows the current configuration and lets the
// user cycle the diagnosis mode and AI provider. API keys are entered via
// 'regwatch settings wizard' where the terminal can hide input.
package settings

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/messages"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/styles"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// View represents the settings view.
type View struct {
	styles *styles.Styles

	settingsService driving.SettingsService
	ctx             context.Context

	settings *domain.AppSettings
	message  string

	width  int
	height int
	ready  bool
	loaded bool
	err    error
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings fetches the current application settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}

		settings, err := v.settingsService.Get(v.ctx)
		if err != nil {
			return messages.SettingsLoaded{Settings: nil, Err: err}
		}
		return messages.SettingsLoaded{Settings: settings, Err: nil}
	}
}

// cycleMode advances the diagnosis mode and persists it.
func (v *View) cycleMode() tea.Cmd {
	if v.settings == nil {
		return nil
	}

	modes := domain.AllDiagnosisModes()
	next := modes[0]
	for i, m := range modes {
		if m == v.settings.Mode {
			next = modes[(i+1)%len(modes)]
			break
		}
	}

	return func() tea.Msg {
		if err := v.settingsService.SetDiagnosisMode(v.ctx, next); err != nil {
			return messages.SettingsSaved{Err: err}
		}
		return messages.SettingsSaved{Err: nil}
	}
}

// cycleProvider advances the AI provider and persists it.
func (v *View) cycleProvider() tea.Cmd {
	if v.settings == nil {
		return nil
	}

	providers := domain.AllAIProviders()
	next := providers[0]
	for i, p := range providers {
		if p == v.settings.LLM.Provider {
			next = providers[(i+1)%len(providers)]
			break
		}
	}

	return func() tea.Msg {
		if err := v.settingsService.SetAIProvider(v.ctx, next); err != nil {
			return messages.SettingsSaved{Err: err}
		}
		return messages.SettingsSaved{Err: nil}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.loaded = true
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.settings = msg.Settings
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.message = msg.Err.Error()
			return v, nil
		}
		v.message = "Saved"
		// Reload to reflect the persisted state
		return v, v.loadSettings()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "m":
			return v, v.cycleMode()
		case "p":
			return v, v.cycleProvider()
		case "r":
			return v, v.loadSettings()
		}
	}

	return v, nil
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 16)

	header := v.styles.Title.Render("Settings")
	sections = append(sections, header, "")

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case !v.loaded:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	case v.settings != nil:
		sections = append(sections, v.renderSettings(v.settings))
	}

	if v.message != "" {
		style := v.styles.Success
		if v.message != "Saved" {
			style = v.styles.Warning
		}
		sections = append(sections, "", style.Render(v.message))
	}

	sections = append(sections, "",
		v.styles.Help.Render("[m] Cycle mode  [p] Cycle provider  [r] Reload  [esc] Back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSettings renders the current configuration.
func (v *View) renderSettings(s *domain.AppSettings) string {
	lines := make([]string, 0, 12)

	lines = append(lines,
		v.styles.Subtitle.Render("Diagnosis"),
		v.styles.Normal.Render("  Mode:     "+string(s.Mode)),
		v.styles.Muted.Render("            "+s.Mode.Description()),
		"",
		v.styles.Subtitle.Render("LLM"),
	)

	if s.LLM.Provider != "" {
		lines = append(lines,
			v.styles.Normal.Render("  Provider: "+string(s.LLM.Provider)),
			v.styles.Normal.Render("  Model:    "+s.LLM.Model),
			v.styles.Normal.Render("  API key:  "+maskAPIKey(s.LLM.APIKey)),
		)
	} else {
		lines = append(lines, v.styles.Muted.Render("  Not configured"))
	}

	lines = append(lines, "", v.styles.Subtitle.Render("Literature"))
	if s.Literature.IsConfigured() {
		lines = append(lines, v.styles.Normal.Render("  Configured"))
	} else {
		lines = append(lines, v.styles.Muted.Render("  Not configured"))
	}

	return strings.Join(lines, "\n")
}

// maskAPIKey hides the middle of an API key for display.
func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Message returns the current status message.
func (v *View) Message() string {
	return v.message
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears transient state before the view is shown.
func (v *View) Reset() {
	v.message = ""
	v.err = nil
}
