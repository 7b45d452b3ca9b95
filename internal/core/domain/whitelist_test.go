package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhitelist_Contains(t *testing.T) {
	w := NewWhitelist("Swear", " dumb ", "")

	assert.True(t, w.Contains("swear"))
	assert.True(t, w.Contains("SWEAR"))
	assert.True(t, w.Contains("Dumb"))
	assert.False(t, w.Contains("dumber"))
	assert.False(t, w.Contains(""))
	assert.Equal(t, 2, w.Len())
}

func TestWhitelist_ZeroValue(t *testing.T) {
	var w Whitelist

	assert.False(t, w.Contains("anything"))
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Words())
}

func TestWhitelist_Words_Sorted(t *testing.T) {
	w := NewWhitelist("zeta", "Alpha", "mid", "alpha")

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, w.Words())
}
