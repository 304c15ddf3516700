package game

import (
	"github.com/wordwheel/wheel/content"
)

// Action is what a player chose to do on their turn.
type Action string

const (
	ActionSpin     Action = "spin"
	ActionBuyVowel Action = "buy_vowel"
	ActionSolve    Action = "solve"
)

// Result is how the action turned out.
type Result string

const (
	ResultSuccess  Result = "success"
	ResultFailure  Result = "failure"
	ResultBankrupt Result = "bankrupt"
)

// Event is one entry of the game history. Score is the acting player's
// score after the action.
type Event struct {
	Player string `json:"player"`
	Action Action `json:"action"`
	Result Result `json:"result"`
	Score  int    `json:"score"`
}

// Outcome describes what a single engine call did.
type Outcome struct {
	// Segment is the wheel segment landed on, for spins.
	Segment content.Segment
	// Letter is the consonant or vowel that was called, upper case.
	Letter rune
	// Occurrences is how many times Letter appears in the phrase.
	Occurrences int
	// Event is nil when the action produces no history entry: a lose-a-turn
	// spin, or a cash spin still waiting for its consonant.
	Event    *Event
	TurnOver bool
	Solved   bool
}
