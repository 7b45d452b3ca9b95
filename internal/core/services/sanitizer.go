package services

import (
	"strings"

	"github.com/samber/lo"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// Sanitize removes whitelisted tokens from message.
// Tokens are split on whitespace runs and rejoined with single spaces.
// Returns "" when every token is whitelisted.
func Sanitize(message string, whitelist domain.Whitelist) string {
	tokens := lo.Filter(strings.Fields(message), func(token string, _ int) bool {
		return !whitelist.Contains(token)
	})
	return strings.Join(tokens, " ")
}
