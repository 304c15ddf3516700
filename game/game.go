// Package game is the turn engine. It tracks whose turn it is, the letters
// revealed so far and every player's score, and it decides when the game is
// over. It does no I/O: the shell reads a decision, calls one of Spin,
// GuessConsonant, BuyVowel or Solve, and reports the Outcome.
package game

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"

	"github.com/wordwheel/wheel/alphabet"
	"github.com/wordwheel/wheel/board"
	"github.com/wordwheel/wheel/content"
)

var (
	ErrWrongState        = errors.New("that action is not allowed right now")
	ErrCannotAffordVowel = errors.New("not enough points to buy a vowel")
	ErrGameOver          = errors.New("the puzzle has already been solved")
	ErrNoPlayers         = errors.New("a game needs at least one player")
	ErrEmptyPhrase       = errors.New("a game needs a phrase with letters in it")
)

// State is where the engine is within a turn.
type State int

const (
	// StateAwaitingAction: the player on turn must pick spin, buy or solve.
	StateAwaitingAction State = iota
	// StateAwaitingConsonant: the player spun a cash segment and must call
	// a consonant.
	StateAwaitingConsonant
	// StateSolved is terminal.
	StateSolved
)

func (s State) String() string {
	switch s {
	case StateAwaitingAction:
		return "awaiting-action"
	case StateAwaitingConsonant:
		return "awaiting-consonant"
	case StateSolved:
		return "solved"
	}
	return "unknown"
}

// Spinner supplies wheel segments. *content.Store satisfies it.
type Spinner interface {
	DrawSegment() content.Segment
}

// Game is the internal game structure that controls the rules of play.
// A Game doesn't care how it is played; the shell drives it.
type Game struct {
	rules   Rules
	wheel   Spinner
	phrase  content.Phrase
	guessed alphabet.LetterSet

	players playerStates
	onturn  int
	turnnum int
	state   State
	pending content.Segment
	solver  int

	history []Event
}

// NewGame starts a game on the given phrase. names is the fixed roster,
// in turn order; the first name goes first.
func NewGame(rules Rules, names []string, p content.Phrase, wheel Spinner) (*Game, error) {
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}
	if !strings.ContainsFunc(p.Phrase, alphabet.IsLetter) {
		return nil, ErrEmptyPhrase
	}
	g := &Game{
		rules:   rules,
		wheel:   wheel,
		phrase:  p,
		players: newPlayerStates(names),
		state:   StateAwaitingAction,
		solver:  -1,
	}
	log.Debug().Str("category", p.Category).Int("players", len(names)).Msg("new-game")
	return g, nil
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) Category() string {
	return g.phrase.Category
}

// Phrase returns the secret phrase.
func (g *Game) Phrase() string {
	return g.phrase.Phrase
}

func (g *Game) Guessed() alphabet.LetterSet {
	return g.guessed
}

// Display returns the phrase as it should be shown to the players. Once
// the puzzle is solved the whole phrase shows, punctuation included.
func (g *Game) Display() string {
	if g.state == StateSolved {
		return board.Reveal(g.phrase.Phrase)
	}
	return board.Obscure(g.phrase.Phrase, g.guessed)
}

func (g *Game) State() State {
	return g.state
}

func (g *Game) Playing() bool {
	return g.state != StateSolved
}

func (g *Game) NumPlayers() int {
	return len(g.players)
}

// PlayerOnTurn returns the index of the current player.
func (g *Game) PlayerOnTurn() int {
	return g.onturn
}

// CurrentPlayer returns a copy of the player on turn.
func (g *Game) CurrentPlayer() Player {
	return *g.players[g.onturn]
}

// Players returns a copy of the roster in turn order.
func (g *Game) Players() []Player {
	return g.players.snapshot()
}

// Turn is the number of turns that have ended so far.
func (g *Game) Turn() int {
	return g.turnnum
}

// History returns every event produced so far.
func (g *Game) History() []Event {
	return append([]Event(nil), g.history...)
}

// Solver returns the index of the player who solved the puzzle, or -1.
func (g *Game) Solver() int {
	return g.solver
}

// CanBuyVowel reports whether the player on turn may buy a vowel.
func (g *Game) CanBuyVowel() bool {
	return g.state == StateAwaitingAction &&
		g.players[g.onturn].Score >= g.rules.VowelCost
}

func (g *Game) checkState(want State) error {
	if g.state == StateSolved {
		return ErrGameOver
	}
	if g.state != want {
		return ErrWrongState
	}
	return nil
}

// Spin draws a wheel segment for the player on turn. A bankrupt segment
// wipes the player's score; bankrupt and lose-a-turn both end the turn.
// A cash segment leaves the player on turn, waiting for GuessConsonant.
func (g *Game) Spin() (Outcome, error) {
	if err := g.checkState(StateAwaitingAction); err != nil {
		return Outcome{}, err
	}
	seg := g.wheel.DrawSegment()
	out := Outcome{Segment: seg}
	p := g.players[g.onturn]
	log.Debug().Str("player", p.Name).Str("segment", seg.Text).Msg("spin")

	switch seg.Kind {
	case content.KindBankrupt:
		p.Score = 0
		out.Event = g.record(ActionSpin, ResultBankrupt)
		out.TurnOver = true
		g.endTurn()
	case content.KindLoseTurn:
		// Nothing gets logged for a lost turn.
		out.TurnOver = true
		g.endTurn()
	default:
		g.pending = seg
		g.state = StateAwaitingConsonant
	}
	return out, nil
}

// GuessConsonant calls a consonant after a cash spin. An invalid letter
// returns an alphabet error and changes nothing, so the caller can ask
// again. A hit scores the segment value once per occurrence and keeps the
// turn; a miss ends it.
func (g *Game) GuessConsonant(input string) (Outcome, error) {
	if err := g.checkState(StateAwaitingConsonant); err != nil {
		return Outcome{}, err
	}
	letter, err := alphabet.ParseLetter(input, alphabet.Consonant)
	if err != nil {
		return Outcome{}, err
	}
	seg := g.pending
	g.pending = content.Segment{}
	g.state = StateAwaitingAction

	out := Outcome{Segment: seg, Letter: letter}
	out.Occurrences = board.Occurrences(g.phrase.Phrase, letter)
	if out.Occurrences > 0 {
		g.players[g.onturn].Score += seg.Value * out.Occurrences
		g.guessed.Add(letter)
		out.Event = g.record(ActionSpin, ResultSuccess)
		return out, nil
	}
	out.Event = g.record(ActionSpin, ResultFailure)
	out.TurnOver = true
	g.endTurn()
	return out, nil
}

// BuyVowel buys a vowel for the player on turn. The cost is paid as soon
// as a valid vowel is given, hit or miss. A hit keeps the turn.
func (g *Game) BuyVowel(input string) (Outcome, error) {
	if err := g.checkState(StateAwaitingAction); err != nil {
		return Outcome{}, err
	}
	if !g.CanBuyVowel() {
		return Outcome{}, ErrCannotAffordVowel
	}
	letter, err := alphabet.ParseLetter(input, alphabet.Vowel)
	if err != nil {
		return Outcome{}, err
	}
	g.players[g.onturn].Score -= g.rules.VowelCost

	out := Outcome{Letter: letter}
	out.Occurrences = board.Occurrences(g.phrase.Phrase, letter)
	if out.Occurrences > 0 {
		g.guessed.Add(letter)
		out.Event = g.record(ActionBuyVowel, ResultSuccess)
		return out, nil
	}
	out.Event = g.record(ActionBuyVowel, ResultFailure)
	out.TurnOver = true
	g.endTurn()
	return out, nil
}

// Solve attempts the whole phrase. The comparison ignores case. A correct
// solve awards the bonus and ends the game; a wrong one ends the turn and
// leaves the score alone.
func (g *Game) Solve(guess string) (Outcome, error) {
	if err := g.checkState(StateAwaitingAction); err != nil {
		return Outcome{}, err
	}
	var out Outcome
	if g.matches(guess) {
		g.players[g.onturn].Score += g.rules.SolveBonus
		g.guessed = g.guessed.Union(alphabet.SetFromString(g.phrase.Phrase))
		out.Event = g.record(ActionSolve, ResultSuccess)
		out.Solved = true
		g.solver = g.onturn
		g.state = StateSolved
		return out, nil
	}
	out.Event = g.record(ActionSolve, ResultFailure)
	out.TurnOver = true
	g.endTurn()
	return out, nil
}

func (g *Game) matches(guess string) bool {
	fold := cases.Fold()
	return fold.String(guess) == fold.String(g.phrase.Phrase)
}

func (g *Game) record(a Action, r Result) *Event {
	p := g.players[g.onturn]
	evt := Event{Player: p.Name, Action: a, Result: r, Score: p.Score}
	g.history = append(g.history, evt)
	log.Debug().Str("player", evt.Player).Str("action", string(a)).
		Str("result", string(r)).Int("score", evt.Score).Msg("game-event")
	return &evt
}

func (g *Game) endTurn() {
	g.onturn = (g.onturn + 1) % len(g.players)
	g.turnnum++
}
