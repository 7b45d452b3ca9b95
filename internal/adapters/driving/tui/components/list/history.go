// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/profanity/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/profanity/internal/core/domain"
)

// DefaultCapacity is the number of checks kept in the history.
const DefaultCapacity = 100

// Entry is one checked message and its outcome.
type Entry struct {
	Message string
	Verdict *domain.Verdict
	Err     error
}

// History displays past checks, newest first.
type History struct {
	entries   []Entry
	selected  int
	capacity  int
	threshold float64
	styles    *styles.Styles
	width     int
	height    int
}

// NewHistory creates a new history list.
func NewHistory(s *styles.Styles) *History {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &History{
		capacity:  DefaultCapacity,
		threshold: domain.DefaultThreshold,
		styles:    s,
		width:     80,
		height:    10,
	}
}

// Add prepends an entry and selects it. The oldest entry is dropped at capacity.
func (h *History) Add(entry Entry) {
	h.entries = append([]Entry{entry}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
	h.selected = 0
}

// View renders the history list.
func (h *History) View() string {
	if len(h.entries) == 0 {
		return h.styles.Muted.Render("No messages checked yet")
	}

	lines := make([]string, 0, len(h.entries)+2)
	lines = append(lines, h.styles.Subtitle.Render(fmt.Sprintf("History (%d)", len(h.entries))), "")

	visible := h.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if h.selected >= visible {
		start = h.selected - visible + 1
	}
	end := min(start+visible, len(h.entries))

	for i := start; i < end; i++ {
		lines = append(lines, h.renderEntry(i, &h.entries[i]))
	}

	return strings.Join(lines, "\n")
}

func (h *History) renderEntry(index int, entry *Entry) string {
	indicator := "  "
	if index == h.selected {
		indicator = "> "
	}

	var badge string
	switch {
	case entry.Err != nil:
		badge = h.styles.Error.Render("error  ")
	case entry.Verdict.IsProfanity:
		badge = h.styles.Flagged.Render(fmt.Sprintf("%.3f ✗", entry.Verdict.Score))
	default:
		badge = h.styles.ScoreStyle(entry.Verdict.Score, h.threshold).
			Render(fmt.Sprintf("%.3f ✓", entry.Verdict.Score))
	}

	message := truncate(entry.Message, max(h.width-16, 10))
	if index == h.selected {
		return h.styles.Selected.Render(indicator+message) + "  " + badge
	}
	return h.styles.Normal.Render(indicator+message) + "  " + badge
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// Entries returns the entries, newest first.
func (h *History) Entries() []Entry {
	return h.entries
}

// Selected returns the index of the selected entry.
func (h *History) Selected() int {
	return h.selected
}

// SelectedEntry returns the selected entry, or nil if the history is empty.
func (h *History) SelectedEntry() *Entry {
	if len(h.entries) == 0 {
		return nil
	}
	return &h.entries[h.selected]
}

// MoveUp selects an older entry.
func (h *History) MoveUp() {
	if h.selected < len(h.entries)-1 {
		h.selected++
	}
}

// MoveDown selects a newer entry.
func (h *History) MoveDown() {
	if h.selected > 0 {
		h.selected--
	}
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = nil
	h.selected = 0
}

// SetThreshold sets the threshold used to colour clean scores.
func (h *History) SetThreshold(threshold float64) {
	h.threshold = threshold
}

// SetDimensions sets the component dimensions.
func (h *History) SetDimensions(width, height int) {
	h.width = width
	h.height = height
}

// Count returns the number of entries.
func (h *History) Count() int {
	return len(h.entries)
}
