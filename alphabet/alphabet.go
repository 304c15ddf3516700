// Package alphabet holds the letter sets used by the game: the vowels that
// can be bought, the consonants that can be called after a spin, and the
// set of letters already revealed on the board.
package alphabet

import (
	"errors"
	"math/bits"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	Vowels     = "AEIOU"
	Consonants = "BCDFGHJKLMNPQRSTVWXYZ"

	numLetters = 26
)

var (
	ErrNotSingleLetter = errors.New("guess must be exactly one letter")
	ErrWrongAlphabet   = errors.New("letter is not in the requested alphabet")
)

// Kind selects which alphabet a guess must belong to.
type Kind int

const (
	Consonant Kind = iota
	Vowel
)

func (k Kind) String() string {
	if k == Vowel {
		return "vowel"
	}
	return "consonant"
}

func (k Kind) letters() string {
	if k == Vowel {
		return Vowels
	}
	return Consonants
}

// Contains reports whether r (in either case) belongs to this alphabet.
func (k Kind) Contains(r rune) bool {
	return strings.ContainsRune(k.letters(), unicode.ToUpper(r))
}

// IsLetter reports whether r is one of the 26 letters the board can hide.
func IsLetter(r rune) bool {
	_, ok := index(r)
	return ok
}

// ParseLetter validates a typed guess. The input must be a single rune and
// it must belong to the alphabet of the given kind. The returned rune is
// always upper case.
func ParseLetter(input string, kind Kind) (rune, error) {
	if utf8.RuneCountInString(input) != 1 {
		return 0, ErrNotSingleLetter
	}
	r, _ := utf8.DecodeRuneInString(input)
	if !kind.Contains(r) {
		return 0, ErrWrongAlphabet
	}
	return unicode.ToUpper(r), nil
}

// LetterSet is a bit mask of guessed letters, with A at bit 0 and Z at
// bit 25. It only ever grows.
type LetterSet uint32

func index(r rune) (uint, bool) {
	r = unicode.ToUpper(r)
	if r < 'A' || r > 'Z' {
		return 0, false
	}
	return uint(r - 'A'), true
}

// Contains is case-insensitive.
func (s LetterSet) Contains(r rune) bool {
	i, ok := index(r)
	if !ok {
		return false
	}
	return s&(1<<i) != 0
}

// Add puts r in the set, returning false if r was already there or is not
// a letter.
func (s *LetterSet) Add(r rune) bool {
	i, ok := index(r)
	if !ok || *s&(1<<i) != 0 {
		return false
	}
	*s |= 1 << i
	return true
}

// Len returns the number of letters in the set.
func (s LetterSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Union returns a set with the letters of both sets.
func (s LetterSet) Union(o LetterSet) LetterSet {
	return s | o
}

// String returns the letters in the set, in alphabetical order.
func (s LetterSet) String() string {
	var sb strings.Builder
	for i := 0; i < numLetters; i++ {
		if s&(1<<uint(i)) != 0 {
			sb.WriteRune(rune('A' + i))
		}
	}
	return sb.String()
}

// SetFromString builds a set from every letter in str; other runes are
// ignored.
func SetFromString(str string) LetterSet {
	var s LetterSet
	for _, r := range str {
		s.Add(r)
	}
	return s
}
