// Package board renders the puzzle board: the secret phrase with every
// letter that has not been called yet hidden behind a placeholder.
package board

import (
	"strings"
	"unicode"

	"github.com/wordwheel/wheel/alphabet"
)

const (
	Placeholder = "_"
	// Separator goes between two cells on the display.
	Separator = " "
)

// Obscure renders phrase with everything but spaces and guessed letters
// masked. Punctuation stays hidden until the phrase is revealed.
func Obscure(phrase string, guessed alphabet.LetterSet) string {
	cells := make([]string, 0, len(phrase))
	for _, r := range phrase {
		if r == ' ' || guessed.Contains(r) {
			cells = append(cells, string(r))
			continue
		}
		cells = append(cells, Placeholder)
	}
	return strings.Join(cells, Separator)
}

// Reveal renders phrase with nothing masked, laid out like Obscure.
func Reveal(phrase string) string {
	cells := make([]string, 0, len(phrase))
	for _, r := range phrase {
		cells = append(cells, string(r))
	}
	return strings.Join(cells, Separator)
}

// Occurrences counts how many times letter appears in phrase, ignoring
// case.
func Occurrences(phrase string, letter rune) int {
	letter = unicode.ToUpper(letter)
	n := 0
	for _, r := range phrase {
		if unicode.ToUpper(r) == letter {
			n++
		}
	}
	return n
}

// Solved reports whether every letter in the phrase is already revealed.
func Solved(phrase string, guessed alphabet.LetterSet) bool {
	for _, r := range phrase {
		if alphabet.IsLetter(r) && !guessed.Contains(r) {
			return false
		}
	}
	return true
}
