// Package tokenizer normalizes raw corpus text into word tokens.
//
// The policy is fixed: input is split on Unicode whitespace, each fragment
// is lower-cased and trimmed of surrounding quotation marks, punctuation
// and symbol runes, a leading '#' sigil is stripped and the remainder
// kept, and fragments are dropped entirely when they are @-mentions,
// URLs, HTML entities, the retweet marker "rt", contain no letters, or
// fall below the minimum rune length.
package tokenizer

import (
	"strings"
	"unicode"
)

// DefaultMinTokenLength drops single-character fragments, which in
// social-media text are overwhelmingly stray symbols and emoji halves.
const DefaultMinTokenLength = 2

const (
	quotationMarks = "„“‟”’❝❞〝〞〟＂'‚‘❛❜`\""
	symbolRunes    = "!$%^&*()_-+=<,>.?/{}[]\\|~:;"
)

var urlPrefixes = []string{"http://", "https://", "ftp://", "sftp://", "data:"}

// Tokenize normalizes text into word tokens using the default policy.
// It is a pure function: equal input always yields equal output.
func Tokenize(text string) []string {
	return TokenizeMin(text, DefaultMinTokenLength)
}

// TokenizeMin is Tokenize with an explicit minimum token length in runes.
func TokenizeMin(text string, minLen int) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.ToLower(field)
		// Entities are checked before trimming: '&' and ';' are
		// themselves trim runes.
		if isHTMLEntity(word) {
			continue
		}
		word = strings.TrimFunc(word, isTrimRune)
		if isURL(word) {
			continue
		}
		if strings.HasPrefix(word, "@") {
			continue
		}
		word = strings.TrimLeft(word, "#")
		if word == "" || word == "rt" {
			continue
		}
		if !hasLetter(word) {
			continue
		}
		if runeLen(word) < minLen {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func isTrimRune(r rune) bool {
	return unicode.IsSpace(r) ||
		strings.ContainsRune(quotationMarks, r) ||
		strings.ContainsRune(symbolRunes, r)
}

func isURL(s string) bool {
	for _, prefix := range urlPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func isHTMLEntity(s string) bool {
	return len(s) > 2 && strings.HasPrefix(s, "&") && strings.HasSuffix(s, ";")
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
