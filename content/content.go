// Package content loads the read-only tables the game is played with: the
// segments of the wheel and the phrase book, keyed by category. It also
// supplies the random draws the turn engine asks for.
package content

import (
	"fmt"
)

// SegmentKind is what landing on a wheel segment does.
type SegmentKind string

const (
	KindCash     SegmentKind = "cash"
	KindBankrupt SegmentKind = "bankrupt"
	KindLoseTurn SegmentKind = "lose_a_turn"
)

func (k SegmentKind) valid() bool {
	switch k {
	case KindCash, KindBankrupt, KindLoseTurn:
		return true
	}
	return false
}

// Segment is one slot on the wheel. Value only means something for cash
// segments.
type Segment struct {
	Kind  SegmentKind `json:"type" yaml:"type"`
	Text  string      `json:"text" yaml:"text"`
	Value int         `json:"value,omitempty" yaml:"value,omitempty"`
}

func (s Segment) String() string {
	return s.Text
}

// Wheel is the full list of segments. Every spin picks one of them with
// equal probability.
type Wheel []Segment

// PhraseBook maps a category to the phrases that can be drawn from it.
type PhraseBook map[string][]string

// Phrase is the category/phrase pair a game is played on.
type Phrase struct {
	Category string `json:"category"`
	Phrase   string `json:"phrase"`
}

// ConfigError is returned when a content file is missing or malformed.
// It is always fatal.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("content file %v: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
