// Package sources provides the source management view for the TUI.
package sources

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

// View represents the sources view with a navigable list and sync trigger.
type View struct {
	styles *styles.Styles

	sourceService driving.SourceService
	sync          driving.SyncOrchestrator
	ctx           context.Context

	sources  []domain.Source
	selected int
	syncing  bool
	message  string

	width  int
	height int
	ready  bool
	loaded bool
	err    error
}

// NewView creates a new sources view.
func NewView(s *styles.Styles, sourceService driving.SourceService, sync driving.SyncOrchestrator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:        s,
		sourceService: sourceService,
		sync:          sync,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the sources.
func (v *View) Init() tea.Cmd {
	return v.loadSources()
}

// loadSources fetches the configured sources.
func (v *View) loadSources() tea.Cmd {
	return func() tea.Msg {
		if v.sourceService == nil {
			return messages.SourcesLoaded{Err: ErrNoSourceService}
		}

		sources, err := v.sourceService.List(v.ctx)
		if err != nil {
			return messages.SourcesLoaded{Sources: nil, Err: err}
		}
		return messages.SourcesLoaded{Sources: sources, Err: nil}
	}
}

// performSync runs a sync for the selected source.
func (v *View) performSync(source domain.Source) tea.Cmd {
	return func() tea.Msg {
		if v.sync == nil {
			return messages.SyncFinished{Slug: source.Slug, Err: ErrNoSyncOrchestrator}
		}

		if err := v.sync.Sync(v.ctx, source.ID); err != nil {
			return messages.SyncFinished{Slug: source.Slug, Err: err}
		}

		unchanged := false
		if st, err := v.sync.Status(v.ctx, source.ID); err == nil && st != nil {
			unchanged = st.Unchanged
		}
		return messages.SyncFinished{Slug: source.Slug, Unchanged: unchanged, Err: nil}
	}
}

// Update handles messages for the sources view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SourcesLoaded:
		v.loaded = true
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.sources = msg.Sources
		if v.selected >= len(v.sources) {
			v.selected = 0
		}
		return v, nil

	case messages.SyncFinished:
		v.syncing = false
		switch {
		case msg.Err != nil:
			v.message = "Sync failed: " + msg.Err.Error()
		case msg.Unchanged:
			v.message = msg.Slug + " unchanged since last sync"
		default:
			v.message = msg.Slug + " synchronised"
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
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
		if v.selected < len(v.sources)-1 {
			v.selected++
		}
		return v, nil
	case "s":
		if v.syncing || len(v.sources) == 0 {
			return v, nil
		}
		source := v.sources[v.selected]
		v.syncing = true
		v.message = "Syncing " + source.Slug + "..."
		return v, v.performSync(source)
	case "r":
		return v, v.loadSources()
	}

	return v, nil
}

// View renders the sources view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, len(v.sources)+8)

	header := v.styles.Title.Render("Sources")
	sections = append(sections, header, "")

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case !v.loaded:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	case len(v.sources) == 0:
		sections = append(sections, v.styles.Muted.Render("No sources configured. Run 'regwatch source seed' first."))
	default:
		sections = append(sections, v.renderList())
	}

	if v.message != "" {
		style := v.styles.Success
		if strings.HasPrefix(v.message, "Sync failed") {
			style = v.styles.Error
		} else if v.syncing {
			style = v.styles.Muted
		}
		sections = append(sections, "", style.Render(v.message))
	}

	sections = append(sections, "",
		v.styles.Help.Render("[j/k] Navigate  [s] Sync  [r] Reload  [esc] Back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderList renders the source entries.
func (v *View) renderList() string {
	lines := make([]string, 0, len(v.sources))

	for i := range v.sources {
		src := &v.sources[i]

		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		enabled := "enabled"
		if !src.Enabled {
			enabled = "disabled"
		}

		entry := fmt.Sprintf("%s%-24s %-12s %-4s %-10s %s",
			indicator, src.Slug, src.Type, src.Jurisdiction, src.Dataset, enabled)

		switch {
		case i == v.selected:
			lines = append(lines, v.styles.Selected.Render(entry))
		case !src.Enabled:
			lines = append(lines, v.styles.Muted.Render(entry))
		default:
			lines = append(lines, v.styles.Normal.Render(entry))
		}
	}

	return strings.Join(lines, "\n")
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

// Sources returns the loaded sources.
func (v *View) Sources() []domain.Source {
	return v.sources
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Syncing returns whether a sync is in progress.
func (v *View) Syncing() bool {
	return v.syncing
}

// Message returns the current status message.
func (v *View) Message() string {
	return v.message
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
