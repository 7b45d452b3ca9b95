package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_ColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	palette := []lipgloss.Color{
		theme.Primary,
		theme.Secondary,
		theme.Clean,
		theme.Flagged,
		theme.Warning,
	}

	seen := make(map[string]bool)
	for _, c := range palette {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[string(c)], "duplicate colour: %s", c)
		seen[string(c)] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.NotNil(t, s.Theme())
}

func TestStyles_ScoreStyle(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, s.Flagged, s.ScoreStyle(0.9, 0.86))
	assert.Equal(t, s.Warning, s.ScoreStyle(0.8, 0.86))
	assert.Equal(t, s.Clean, s.ScoreStyle(0.86-0.1, 0.86))
	assert.Equal(t, s.Warning, s.ScoreStyle(0.86, 0.86))
}

func TestScoreBar(t *testing.T) {
	tests := []struct {
		score float64
		width int
		want  string
	}{
		{0, 4, "[----]"},
		{1, 4, "[####]"},
		{0.5, 4, "[##--]"},
		{1.7, 2, "[##]"},
		{-0.3, 2, "[--]"},
		{0.5, 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreBar(tt.score, tt.width))
	}
}
