// Package history provides the diagnosis history view for the TUI.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/messages"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/styles"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// historyLimit caps how many past diagnoses are loaded into the view.
const historyLimit = 50

// View represents the diagnosis history view.
type View struct {
	styles *styles.Styles

	diagnosisService driving.DiagnosisService
	ctx              context.Context

	diagnoses []domain.Diagnosis
	selected  int

	width  int
	height int
	ready  bool
	loaded bool
	err    error
}

// NewView creates a new history view.
func NewView(s *styles.Styles, diagnosisService driving.DiagnosisService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:           s,
		diagnosisService: diagnosisService,
		ctx:              context.Background(),
		width:            80,
		height:           24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the history.
func (v *View) Init() tea.Cmd {
	return v.loadHistory()
}

// loadHistory fetches recent diagnoses.
func (v *View) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if v.diagnosisService == nil {
			return messages.HistoryLoaded{Err: ErrNoDiagnosisService}
		}

		diagnoses, err := v.diagnosisService.History(v.ctx, historyLimit)
		if err != nil {
			return messages.HistoryLoaded{Diagnoses: nil, Err: err}
		}
		return messages.HistoryLoaded{Diagnoses: diagnoses, Err: nil}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.loaded = true
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.diagnoses = msg.Diagnoses
		v.selected = 0
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil
		case "down", "j":
			if v.selected < len(v.diagnoses)-1 {
				v.selected++
			}
			return v, nil
		case "r":
			return v, v.loadHistory()
		}
	}

	return v, nil
}

// View renders the history view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, len(v.diagnoses)+6)

	header := v.styles.Title.Render("History")
	sections = append(sections, header, "")

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case !v.loaded:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	case len(v.diagnoses) == 0:
		sections = append(sections, v.styles.Muted.Render("No diagnoses yet"))
	default:
		sections = append(sections, v.renderList())
	}

	sections = append(sections, "",
		v.styles.Help.Render("[j/k] Navigate  [r] Reload  [esc] Back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderList renders the diagnosis entries.
func (v *View) renderList() string {
	lines := make([]string, 0, len(v.diagnoses))

	for i := range v.diagnoses {
		d := &v.diagnoses[i]

		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		entry := fmt.Sprintf("%s%s  %-22s %-3s %-22s %s",
			indicator,
			d.DiagnosedAt.Format("2006-01-02 15:04"),
			truncate(d.Chemical.Name, 22),
			d.Market,
			d.Status,
			truncate(d.Basis, 40),
		)

		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render(entry))
		} else {
			lines = append(lines, v.styles.Normal.Render(entry))
		}
	}

	return strings.Join(lines, "\n")
}

// truncate shortens a string to fit a column.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
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

// Diagnoses returns the loaded diagnoses.
func (v *View) Diagnoses() []domain.Diagnosis {
	return v.diagnoses
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
