package domain

import (
	"sort"
	"strings"
)

// Whitelist is a case-insensitive set of tokens exempt from detection.
// The zero value is an empty whitelist.
type Whitelist struct {
	words map[string]struct{}
}

// NewWhitelist builds a whitelist from the given words.
// Words are lowercased and surrounding whitespace is removed; blanks are ignored.
func NewWhitelist(words ...string) Whitelist {
	w := Whitelist{words: make(map[string]struct{}, len(words))}
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		w.words[word] = struct{}{}
	}
	return w
}

// Contains reports whether the lowercase form of token is whitelisted.
func (w Whitelist) Contains(token string) bool {
	if len(w.words) == 0 {
		return false
	}
	_, ok := w.words[strings.ToLower(token)]
	return ok
}

// Len returns the number of whitelisted words.
func (w Whitelist) Len() int {
	return len(w.words)
}

// Words returns the whitelisted words in sorted order.
func (w Whitelist) Words() []string {
	words := make([]string, 0, len(w.words))
	for word := range w.words {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}
