package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		whitelist []string
		want      string
	}{
		{"no whitelist", "you are so dumb", nil, "you are so dumb"},
		{"removes whitelisted word", "you are so dumb and ugly", []string{"dumb"}, "you are so and ugly"},
		{"case insensitive", "SWEAR words Swear", []string{"swear"}, "words"},
		{"collapses whitespace", "  hello \t\n world  ", nil, "hello world"},
		{"all whitelisted", "swear swear", []string{"swear"}, ""},
		{"exact token only", "swearing swear", []string{"swear"}, "swearing"},
		{"punctuation is part of token", "swear!", []string{"swear"}, "swear!"},
		{"empty", "", []string{"swear"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.message, domain.NewWhitelist(tt.whitelist...))
			assert.Equal(t, tt.want, got)
		})
	}
}
