// Package diagnose provides the chemical diagnosis view for the TUI.
package diagnose

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/components/input"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/components/status"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/keymap"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/messages"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/styles"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// View represents the diagnosis view with chemical input, market selector
// and result card.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	statusbar *status.Bar

	diagnosisService driving.DiagnosisService
	ctx              context.Context

	markets   []domain.Market
	marketIdx int
	diagnosis *domain.Diagnosis

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a chemical, false = viewing a result
}

// NewView creates a new diagnosis view.
func NewView(s *styles.Styles, km *keymap.KeyMap, diagnosisService driving.DiagnosisService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:           s,
		keymap:           km,
		input:            input.NewField(s, "Chemical", "Enter chemical name or CAS number..."),
		statusbar:        status.NewBar(s, km),
		diagnosisService: diagnosisService,
		ctx:              context.Background(),
		markets:          domain.AllMarkets(),
		marketIdx:        0,
		width:            80,
		height:           24,
		focusInput:       true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the diagnosis view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DiagnosisCompleted:
		v.handleDiagnosisCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Tab cycles the target market in either mode
	if msg.Type == tea.KeyTab {
		v.marketIdx = (v.marketIdx + 1) % len(v.markets)
		return v, nil
	}

	// Enter in input mode submits a diagnosis
	if msg.Type == tea.KeyEnter && v.focusInput {
		chemical := strings.TrimSpace(v.input.Value())
		if chemical == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateWorking)
		v.statusbar.SetMessage("Diagnosing " + chemical + "...")
		v.focusInput = false
		v.input.Blur()
		return v, v.performDiagnosis(chemical, v.markets[v.marketIdx])
	}

	// Input mode: all keys go to input
	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	// Result mode: n starts a new diagnosis
	if msg.String() == "n" {
		v.Reset()
		return v, nil
	}

	return v, nil
}

// performDiagnosis runs a diagnosis and returns the result as a message.
func (v *View) performDiagnosis(chemical string, market domain.Market) tea.Cmd {
	return func() tea.Msg {
		if v.diagnosisService == nil {
			return messages.ErrorOccurred{Err: ErrNoDiagnosisService}
		}

		diagnosis, err := v.diagnosisService.Diagnose(v.ctx, chemical, market)
		if err != nil {
			return messages.DiagnosisCompleted{Diagnosis: nil, Err: err}
		}
		return messages.DiagnosisCompleted{Diagnosis: diagnosis, Err: nil}
	}
}

// handleDiagnosisCompleted processes a finished diagnosis.
func (v *View) handleDiagnosisCompleted(msg messages.DiagnosisCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		v.focusInput = true
		v.input.Focus()
		return
	}

	v.err = nil
	v.diagnosis = msg.Diagnosis
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(msg.Diagnosis.Status.String() + " in " + msg.Diagnosis.Market.String())
}

// View renders the diagnosis view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("Diagnose")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	marketLine := v.styles.Muted.Render("Market: ") +
		v.styles.Subtitle.Render(v.markets[v.marketIdx].String()) +
		v.styles.Muted.Render("  [tab] to change")
	sections = append(sections, marketLine, "")

	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	if v.diagnosis != nil {
		sections = append(sections, v.renderDiagnosis(v.diagnosis), "")
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDiagnosis renders a result card for a completed diagnosis.
func (v *View) renderDiagnosis(d *domain.Diagnosis) string {
	lines := make([]string, 0, 8+len(d.Evidence))

	statusLine := v.statusStyle(d.Status).Render(d.Status.String()) +
		v.styles.Muted.Render("  "+d.Status.Description())
	lines = append(lines, statusLine)

	name := d.Chemical.Name
	if cas := d.Chemical.PrimaryCAS(); cas != "" {
		name += "  (CAS " + cas + ")"
	}
	lines = append(lines, v.styles.Normal.Render(name))

	if d.Basis != "" {
		lines = append(lines, v.styles.Normal.Render("Basis: "+d.Basis))
	}
	if d.Reason != "" {
		lines = append(lines, v.styles.Muted.Render(d.Reason))
	}

	if len(d.Evidence) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Evidence"))
		for i := range d.Evidence {
			l := &d.Evidence[i]
			entry := fmt.Sprintf("  %s (%s)", l.Basis(), l.Classification)
			lines = append(lines, v.styles.Normal.Render(entry))
		}
	}

	if d.Hazard != nil && len(d.Hazard.Attributes) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Hazard ("+d.Hazard.Provider+")"))
		for k, val := range d.Hazard.Attributes {
			lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  %s: %v", k, val)))
		}
	}

	content := strings.Join(lines, "\n")
	return v.styles.Border.Padding(0, 1).Render(content)
}

// statusStyle picks a style matching the severity of a status.
func (v *View) statusStyle(s domain.ComplianceStatus) lipgloss.Style {
	switch s {
	case domain.StatusBanned, domain.StatusAuthorizationRequired:
		return v.styles.Error
	case domain.StatusRestricted:
		return v.styles.Warning
	case domain.StatusListed, domain.StatusNotListed:
		return v.styles.Success
	case domain.StatusUnknown:
		return v.styles.Muted
	}
	return v.styles.Normal
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Chemical returns the current chemical input.
func (v *View) Chemical() string {
	return v.input.Value()
}

// Market returns the currently selected market.
func (v *View) Market() domain.Market {
	return v.markets[v.marketIdx]
}

// Diagnosis returns the last completed diagnosis, if any.
func (v *View) Diagnosis() *domain.Diagnosis {
	return v.diagnosis
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.diagnosis = nil
	v.err = nil
	v.statusbar.Clear()
}
