package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/views/check"
)

// App is the main TUI application following the Elm architecture.
type App struct {
	ports     *Ports
	keymap    *keymap.KeyMap
	checkView *check.View
	ready     bool
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
		ports:     ports,
		keymap:    km,
		checkView: check.NewView(s, km, ports.Detection),
	}, nil
}

// WithContext sets the context used for detection calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.checkView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("profanity"),
		a.checkView.Init(),
		a.loadSettings(),
	)
}

func (a *App) loadSettings() tea.Cmd {
	settings := a.ports.Settings
	if settings == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := settings.Get()
		return messages.SettingsLoaded{Settings: s, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.ready = true
		a.checkView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.checkView, cmd = a.checkView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}
	return a.checkView.View()
}

// CheckView returns the check view.
func (a *App) CheckView() *check.View {
	return a.checkView
}

// Ready reports whether the first window size has been received.
func (a *App) Ready() bool {
	return a.ready
}
