// Package search provides the regulation text search view for the TUI.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/components/input"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/components/list"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/components/status"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/keymap"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/messages"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/styles"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
	expanded   bool // true = show full text of the selected section
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewField(s, "Search", "Search regulation text..."),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
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

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	var listCmd tea.Cmd
	v.list, listCmd = v.list.Update(msg)
	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc closes the expanded section first, then goes back to menu
	if msg.Type == tea.KeyEsc {
		if v.expanded {
			v.expanded = false
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Enter in input mode submits search
	if msg.Type == tea.KeyEnter && v.focusInput {
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateWorking)
		v.statusbar.SetMessage("Searching...")
		v.focusInput = false
		v.input.Blur()
		return v, v.performSearch(query)
	}

	// Input mode: all keys go to input
	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		return v, nil
	}

	// Results mode: Enter toggles the full section text
	if msg.Type == tea.KeyEnter {
		if v.list.SelectedResult() != nil {
			v.expanded = !v.expanded
		}
		return v, nil
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		v.expanded = false
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		v.expanded = false
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
		v.expanded = false
		return v, nil
	case "j":
		v.list.MoveDown()
		v.expanded = false
		return v, nil
	case "n":
		// New search: clear input and focus it
		v.focusInput = true
		v.expanded = false
		v.input.Focus()
		v.input.SetValue("")
		return v, nil
	}

	return v, nil
}

// performSearch executes a search and returns results.
func (v *View) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		results, err := v.searchService.Search(v.ctx, query, domain.SearchOptions{})
		if err != nil {
			return messages.SearchCompleted{Results: nil, Err: err}
		}
		return messages.SearchCompleted{Results: results, Err: nil}
	}
}

// handleSearchCompleted processes search results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResultCount(len(msg.Results))

	// Switch to results mode after successful search
	v.focusInput = false
	v.expanded = false
	v.input.Blur()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("Search Regulations")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	sections = append(sections, v.list.View())

	// Expanded section text overlay
	if v.expanded {
		if result := v.list.SelectedResult(); result != nil {
			sections = append(sections, "", v.renderSection(result))
		}
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSection renders the full text of the selected section.
func (v *View) renderSection(result *domain.SearchResult) string {
	lines := make([]string, 0, 4)

	title := result.Section.Citation
	if title == "" {
		title = result.Section.ID
	}
	if result.SourceName != "" {
		title += "  " + result.SourceName
	}
	lines = append(lines, v.styles.Subtitle.Render(title))

	if result.Section.Heading != "" {
		lines = append(lines, v.styles.Normal.Render(result.Section.Heading))
	}
	lines = append(lines, v.styles.Normal.Render(result.Section.Text))

	content := strings.Join(lines, "\n")
	return v.styles.Border.Padding(0, 1).Width(v.width - 4).Render(content)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Expanded returns whether the full section text is shown.
func (v *View) Expanded() bool {
	return v.expanded
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.expanded = false
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.Clear()
}
