// Package check provides the interactive message checking view.
package check

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driving"
)

// View is the check view: message input, latest verdict, history and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	help      help.Model
	input     *input.MessageInput
	history   *list.History
	statusbar *status.Bar

	detection driving.DetectionService
	ctx       context.Context

	threshold float64
	latest    *list.Entry
	checking  bool
	showHelp  bool
	width     int
	height    int
}

// NewView creates a new check view.
func NewView(s *styles.Styles, km *keymap.KeyMap, detection driving.DetectionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		help:      help.New(),
		input:     input.NewMessageInput(s),
		history:   list.NewHistory(s),
		statusbar: status.NewBar(s, km),
		detection: detection,
		ctx:       context.Background(),
		threshold: domain.DefaultThreshold,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for detection calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the check view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CheckCompleted:
		v.handleCheckCompleted(msg)
		return v, nil

	case messages.SettingsLoaded:
		v.handleSettingsLoaded(msg)
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	cmds = append(cmds, cmd)
	v.statusbar, cmd = v.statusbar.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Help):
		v.showHelp = !v.showHelp
		return v, nil

	case key.Matches(msg, v.keymap.Check):
		message := v.input.Value()
		if strings.TrimSpace(message) == "" || v.checking {
			return v, nil
		}
		v.checking = true
		return v, tea.Batch(v.statusbar.StartChecking(), v.performCheck(message))

	case key.Matches(msg, v.keymap.Clear):
		v.input.Reset()
		return v, nil

	case key.Matches(msg, v.keymap.Up):
		v.history.MoveUp()
		return v, nil

	case key.Matches(msg, v.keymap.Down):
		v.history.MoveDown()
		return v, nil

	case key.Matches(msg, v.keymap.Recall):
		if entry := v.history.SelectedEntry(); entry != nil {
			v.input.SetValue(entry.Message)
		}
		return v, nil

	case key.Matches(msg, v.keymap.ClearHistory):
		v.history.Clear()
		v.latest = nil
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// performCheck runs detection off the UI goroutine.
func (v *View) performCheck(message string) tea.Cmd {
	detection := v.detection
	ctx := v.ctx
	return func() tea.Msg {
		if detection == nil {
			return messages.CheckCompleted{Message: message, Err: errors.New("detection service not configured")}
		}
		start := time.Now()
		verdict, err := detection.Detect(ctx, message)
		return messages.CheckCompleted{
			Message:  message,
			Verdict:  verdict,
			Err:      err,
			Duration: time.Since(start),
		}
	}
}

func (v *View) handleCheckCompleted(msg messages.CheckCompleted) {
	v.checking = false
	entry := list.Entry{Message: msg.Message, Verdict: msg.Verdict, Err: msg.Err}
	v.latest = &entry
	v.history.Add(entry)

	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(errorMessage(msg.Err))
		return
	}

	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetDuration(msg.Duration)
	v.input.Reset()
}

func (v *View) handleSettingsLoaded(msg messages.SettingsLoaded) {
	if msg.Err != nil || msg.Settings == nil {
		return
	}
	v.threshold = msg.Settings.Detection.Threshold
	v.history.SetThreshold(v.threshold)
	v.statusbar.SetInfo(fmt.Sprintf("%s | threshold %.2f",
		msg.Settings.VectorIndex.Backend, msg.Settings.Detection.Threshold))
}

// errorMessage shortens validation errors to their user-facing text.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		return "message is required"
	case errors.Is(err, domain.ErrMessageTooLong):
		return "message is too long"
	default:
		return err.Error()
	}
}

// View renders the check view.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("Profanity Check"),
		"",
		v.input.View(),
		"",
		v.renderLatest(),
		"",
		v.history.View(),
	}

	if v.showHelp {
		sections = append(sections, "", v.help.FullHelpView(v.keymap.FullHelp()))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	gap := v.height - lipgloss.Height(body) - 1
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + v.statusbar.View()
}

func (v *View) renderLatest() string {
	if v.latest == nil {
		return v.styles.Muted.Render("Press enter to check a message.")
	}
	if v.latest.Err != nil {
		return v.styles.Verdict.Render(v.styles.Error.Render("Check failed: " + errorMessage(v.latest.Err)))
	}

	verdict := v.latest.Verdict
	bar := styles.ScoreBar(verdict.Score, 20)

	var lines []string
	if verdict.IsProfanity {
		lines = append(lines,
			v.styles.Flagged.Render("✗ Profanity detected"),
			v.styles.Flagged.Render(fmt.Sprintf("%s %.3f", bar, verdict.Score)),
			v.styles.Muted.Render("Flagged for: ")+v.styles.Normal.Render(verdict.FlaggedFor),
		)
	} else {
		scoreStyle := v.styles.ScoreStyle(verdict.Score, v.threshold)
		lines = append(lines,
			v.styles.Clean.Render("✓ Clean"),
			scoreStyle.Render(fmt.Sprintf("%s %.3f", bar, verdict.Score)),
		)
	}
	return v.styles.Verdict.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.help.Width = width
	// header, input, verdict box and status bar
	v.history.SetDimensions(width, max(height-14, 3))
}

// Checking reports whether a check is in flight.
func (v *View) Checking() bool {
	return v.checking
}

// Latest returns the most recent check, or nil.
func (v *View) Latest() *list.Entry {
	return v.latest
}

// History returns the history component.
func (v *View) History() *list.History {
	return v.history
}

// Input returns the input component.
func (v *View) Input() *input.MessageInput {
	return v.input
}

// Threshold returns the threshold used for colouring.
func (v *View) Threshold() float64 {
	return v.threshold
}
