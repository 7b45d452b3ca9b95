package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the maximum number of characters accepted per message.
const MaxMessageLength = 1000

// NormalizeMessage trims the raw message and checks it against the input rules.
// Length is counted in Unicode code points, not bytes.
func NormalizeMessage(raw string) (string, error) {
	message := strings.TrimSpace(raw)
	if message == "" {
		return "", ErrEmptyMessage
	}

	if n := utf8.RuneCountInString(message); n > MaxMessageLength {
		return "", fmt.Errorf("%w: %d characters (max %d)", ErrMessageTooLong, n, MaxMessageLength)
	}

	return message, nil
}
