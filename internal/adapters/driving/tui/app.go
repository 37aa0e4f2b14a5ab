package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/keymap"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/messages"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/styles"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/views/compare"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/views/diagnose"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/views/history"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/views/menu"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/views/search"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/views/settings"
	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driving/tui/views/sources"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// menuView is the main navigation menu.
	menuView *menu.View

	// diagnoseView is the chemical diagnosis view.
	diagnoseView *diagnose.View

	// compareView is the cross-market comparison view.
	compareView *compare.View

	// searchView is the regulation text search view.
	searchView *search.View

	// historyView is the diagnosis history view.
	historyView *history.View

	// sourcesView is the source management view.
	sourcesView *sources.View

	// settingsView is the settings view.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		menuView:     menu.NewView(s),
		diagnoseView: diagnose.NewView(s, km, ports.Diagnosis),
		compareView:  compare.NewView(s, km, ports.Comparison),
		searchView:   search.NewView(s, km, ports.Search),
		historyView:  history.NewView(s, ports.Diagnosis),
		sourcesView:  sources.NewView(s, ports.Source, ports.Sync),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app and all views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.diagnoseView.WithContext(ctx)
	a.compareView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	a.sourcesView.WithContext(ctx)
	a.settingsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("regwatch - Chemical Compliance"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.diagnoseView.SetDimensions(msg.Width, msg.Height)
		a.compareView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.historyView.SetDimensions(msg.Width, msg.Height)
		a.sourcesView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewDiagnose:
			a.diagnoseView, cmd = a.diagnoseView.Update(msg)
			a.err = a.diagnoseView.Err()
			return a, cmd

		case messages.ViewCompare:
			a.compareView, cmd = a.compareView.Update(msg)
			a.err = a.compareView.Err()
			return a, cmd

		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			a.err = a.searchView.Err()
			return a, cmd

		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
			return a, cmd

		case messages.ViewSources:
			a.sourcesView, cmd = a.sourcesView.Update(msg)
			return a, cmd

		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewDiagnose:
			a.diagnoseView.Reset()
			return a, a.diagnoseView.Init()
		case messages.ViewCompare:
			a.compareView.Reset()
			return a, a.compareView.Init()
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewHistory:
			return a, a.historyView.Init()
		case messages.ViewSources:
			return a, a.sourcesView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.DiagnosisCompleted:
		a.diagnoseView, cmd = a.diagnoseView.Update(msg)
		a.err = a.diagnoseView.Err()
		return a, cmd

	case messages.ComparisonCompleted:
		a.compareView, cmd = a.compareView.Update(msg)
		a.err = a.compareView.Err()
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.SourcesLoaded, messages.SyncFinished:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewDiagnose:
			a.diagnoseView, cmd = a.diagnoseView.Update(msg)
		case messages.ViewCompare:
			a.compareView, cmd = a.compareView.Update(msg)
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewMenu, messages.ViewHistory, messages.ViewSources,
			messages.ViewSettings, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDiagnose:
		a.diagnoseView, cmd = a.diagnoseView.Update(msg)
	case messages.ViewCompare:
		a.compareView, cmd = a.compareView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewSources:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewDiagnose:
		return a.diagnoseView.View()
	case messages.ViewCompare:
		return a.compareView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewSources:
		return a.sourcesView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Diagnose:
  (type)      Enter chemical name or CAS number
  tab         Cycle target market
  enter       Run diagnosis
  n           New diagnosis

Search:
  (type)      Enter search query
  enter       Submit search / expand section
  j/k, ↑/↓    Navigate results
  n           New search

Sources:
  j/k, ↑/↓    Navigate sources
  s           Sync selected source
  r           Reload

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.diagnoseView.SetDimensions(width, height)
	a.compareView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.sourcesView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
