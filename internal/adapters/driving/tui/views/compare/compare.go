// Package compare provides the cross-market comparison view for the TUI.
package compare

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

// View represents the comparison view with chemical input and a per-market
// status table.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	statusbar *status.Bar

	comparisonService driving.ComparisonService
	ctx               context.Context

	comparison *domain.MarketComparison

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a new comparison view.
func NewView(s *styles.Styles, km *keymap.KeyMap, comparisonService driving.ComparisonService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:            s,
		keymap:            km,
		input:             input.NewField(s, "Chemical", "Enter chemical name or CAS number..."),
		statusbar:         status.NewBar(s, km),
		comparisonService: comparisonService,
		ctx:               context.Background(),
		width:             80,
		height:            24,
		focusInput:        true,
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

// Update handles messages for the comparison view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ComparisonCompleted:
		v.handleComparisonCompleted(msg)
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
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyEnter && v.focusInput {
		chemical := strings.TrimSpace(v.input.Value())
		if chemical == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateWorking)
		v.statusbar.SetMessage("Comparing " + chemical + " across markets...")
		v.focusInput = false
		v.input.Blur()
		return v, v.performComparison(chemical)
	}

	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	if msg.String() == "n" {
		v.Reset()
		return v, nil
	}

	return v, nil
}

// performComparison compares the chemical across all markets.
func (v *View) performComparison(chemical string) tea.Cmd {
	return func() tea.Msg {
		if v.comparisonService == nil {
			return messages.ErrorOccurred{Err: ErrNoComparisonService}
		}

		comparison, err := v.comparisonService.Compare(v.ctx, chemical, nil)
		if err != nil {
			return messages.ComparisonCompleted{Comparison: nil, Err: err}
		}
		return messages.ComparisonCompleted{Comparison: comparison, Err: nil}
	}
}

// handleComparisonCompleted processes a finished comparison.
func (v *View) handleComparisonCompleted(msg messages.ComparisonCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		v.focusInput = true
		v.input.Focus()
		return
	}

	v.err = nil
	v.comparison = msg.Comparison
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(fmt.Sprintf("%d markets compared", len(msg.Comparison.Rows)))
}

// View renders the comparison view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Compare Markets")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	if v.comparison != nil {
		sections = append(sections, v.renderComparison(v.comparison), "")
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderComparison renders the per-market status table.
func (v *View) renderComparison(c *domain.MarketComparison) string {
	lines := make([]string, 0, len(c.Rows)+6)

	name := c.Chemical.Name
	if cas := c.Chemical.PrimaryCAS(); cas != "" {
		name += "  (CAS " + cas + ")"
	}
	lines = append(lines, v.styles.Normal.Render(name), "")

	for _, row := range c.Rows {
		entry := fmt.Sprintf("%-16s %-24s %s", row.Market.Description(), row.Status, row.Basis)
		lines = append(lines, v.statusStyle(row.Status).Render(entry))
	}

	if strictest := c.Strictest(); strictest != nil &&
		strictest.Status.Severity() > domain.StatusNotListed.Severity() {
		lines = append(lines, "",
			v.styles.Warning.Render(fmt.Sprintf("Strictest: %s (%s)", strictest.Market, strictest.Status)))
	}

	if c.Summary != "" {
		lines = append(lines, "", v.styles.Muted.Render(c.Summary))
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

// Comparison returns the last completed comparison, if any.
func (v *View) Comparison() *domain.MarketComparison {
	return v.comparison
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
	v.comparison = nil
	v.err = nil
	v.statusbar.Clear()
}
