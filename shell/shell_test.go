package shell

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/wordwheel/wheel/config"
	"github.com/wordwheel/wheel/content"
	"github.com/wordwheel/wheel/game"
)

type scriptedPrompter struct {
	lines   []string
	prompts []string
	closed  bool
}

func (s *scriptedPrompter) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedPrompter) SetPrompt(p string) { s.prompts = append(s.prompts, p) }
func (s *scriptedPrompter) Close() error       { s.closed = true; return nil }

type memLog struct {
	started    *content.Phrase
	events     []game.Event
	final      []game.Player
	finalCalls int
	appendErr  error
}

func (m *memLog) Start(p content.Phrase) error {
	m.started = &p
	return nil
}

func (m *memLog) Append(evt game.Event) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, evt)
	return nil
}

func (m *memLog) WriteFinalScores(players []game.Player) error {
	m.final = players
	m.finalCalls++
	return nil
}

type scriptedRand struct {
	vals []int
	idx  int
}

func (s *scriptedRand) Intn(n int) int {
	v := 0
	if s.idx < len(s.vals) {
		v = s.vals[s.idx]
	}
	s.idx++
	return v % n
}

var testWheel = content.Wheel{
	{Kind: content.KindCash, Text: "$500", Value: 500},
	{Kind: content.KindBankrupt, Text: "BANKRUPT"},
	{Kind: content.KindLoseTurn, Text: "Lose a turn"},
}

// The first two draws pick the category and phrase; spins come after.
func setup(t *testing.T, spins []int, lines ...string) (*ShellController, *scriptedPrompter, *memLog, *bytes.Buffer) {
	t.Helper()
	cfg := config.New()
	if err := cfg.Load(nil); err != nil {
		t.Fatal(err)
	}
	rng := &scriptedRand{vals: append([]int{0, 0}, spins...)}
	store := content.NewStore(testWheel, content.PhraseBook{"Phrase": {"WHEEL OF FORTUNE"}}, rng)
	p := &scriptedPrompter{lines: lines}
	hist := &memLog{}
	out := &bytes.Buffer{}
	sc := newShellController(cfg, store, hist, p, out)
	if err := sc.NewGame(); err != nil {
		t.Fatal(err)
	}
	return sc, p, hist, out
}

func TestFirstPlayerSolvesImmediately(t *testing.T) {
	is := is.New(t)
	sc, p, hist, out := setup(t, nil, "3", "wheel of fortune")

	is.NoErr(sc.Loop())
	sc.Cleanup()

	is.Equal(*hist.started, content.Phrase{Category: "Phrase", Phrase: "WHEEL OF FORTUNE"})
	is.Equal(hist.events, []game.Event{
		{Player: "ChatGPTv4 1", Action: game.ActionSolve, Result: game.ResultSuccess, Score: 500},
	})
	is.Equal(hist.finalCalls, 1)
	is.Equal(hist.final[0].Score, 500)
	is.Equal(hist.final[1].Score, 0)
	is.True(p.closed)

	text := out.String()
	is.True(strings.Contains(text, "The category is: Phrase"))
	is.True(strings.Contains(text, "Congratulations, you solved the puzzle!"))
	is.True(strings.Contains(text, "The winner is: ChatGPTv4 1 with 500 points."))
	is.True(!strings.Contains(text, "Google Bert(aka Bard) 2's turn"))
}

func TestHelpDoesNotUseTurn(t *testing.T) {
	is := is.New(t)
	sc, _, hist, out := setup(t, nil, "4", "3", "WHEEL OF FORTUNE")
	is.NoErr(sc.Loop())
	is.True(strings.Contains(out.String(), "Here are the rules"))
	is.True(strings.Contains(out.String(), "fixed cost of 250 points"))
	is.Equal(hist.events[0].Player, "ChatGPTv4 1")
}

func TestVowelOptionHiddenWithoutFunds(t *testing.T) {
	is := is.New(t)
	sc, p, hist, out := setup(t, nil, "2", "9", "3", "WHEEL OF FORTUNE")
	is.NoErr(sc.Loop())
	is.True(!strings.Contains(p.prompts[0], "Buy a vowel"))
	is.Equal(strings.Count(out.String(), "Please choose one of the options listed."), 2)
	// still the first player's turn after the bad choices
	is.Equal(hist.events[0].Player, "ChatGPTv4 1")
}

func TestFullGame(t *testing.T) {
	is := is.New(t)
	sc, p, hist, out := setup(t, []int{0, 2},
		// cash spin: two bad guesses, then W
		"1", "E", "xy", "W",
		// buy a vowel: one bad vowel, then a miss
		"2", "B", "A",
		// second player misses the solve
		"3", "WHEEL OF MISFORTUNE",
		// third player loses a turn
		"1",
		// first player solves
		"3", "Wheel Of Fortune",
	)
	is.NoErr(sc.Loop())
	sc.Cleanup()
	sc.Cleanup()

	is.Equal(hist.events, []game.Event{
		{Player: "ChatGPTv4 1", Action: game.ActionSpin, Result: game.ResultSuccess, Score: 500},
		{Player: "ChatGPTv4 1", Action: game.ActionBuyVowel, Result: game.ResultFailure, Score: 250},
		{Player: "Google Bert(aka Bard) 2", Action: game.ActionSolve, Result: game.ResultFailure, Score: 0},
		{Player: "ChatGPTv4 1", Action: game.ActionSolve, Result: game.ResultSuccess, Score: 750},
	})
	is.Equal(hist.finalCalls, 1)
	is.Equal(hist.final, []game.Player{
		{Name: "ChatGPTv4 1", Score: 750},
		{Name: "Google Bert(aka Bard) 2", Score: 0},
		{Name: "LaMMA", Score: 0},
	})

	text := out.String()
	is.Equal(strings.Count(text, "Invalid guess. Please enter a consonant."), 2)
	is.Equal(strings.Count(text, "Invalid input. Please enter a vowel."), 1)
	is.True(strings.Contains(text, "You spun: $500"))
	is.True(strings.Contains(text, "There is one W."))
	is.True(strings.Contains(text, "Sorry, there is no A."))
	is.True(strings.Contains(text, "W _ _ _ _   _ _   _ _ _ _ _ _ _"))
	is.True(strings.Contains(text, "You spun: Lose a turn"))
	is.True(strings.Contains(text, "The winner is: ChatGPTv4 1 with 750 points."))
	// The vowel option showed up once the first player had 500 points.
	is.True(strings.Contains(strings.Join(p.prompts, "\n"), "2- Buy a vowel"))
}

func TestBankruptSpin(t *testing.T) {
	is := is.New(t)
	sc, _, hist, out := setup(t, []int{1}, "1", "3", "WHEEL OF FORTUNE")
	is.NoErr(sc.Loop())
	is.True(strings.Contains(out.String(), "Bankrupt!"))
	is.Equal(hist.events[0], game.Event{Player: "ChatGPTv4 1", Action: game.ActionSpin,
		Result: game.ResultBankrupt, Score: 0})
	is.Equal(hist.events[1].Player, "Google Bert(aka Bard) 2")
}

func TestQuitStillWritesScores(t *testing.T) {
	is := is.New(t)
	sc, _, hist, _ := setup(t, []int{0}, "1", "T")
	err := sc.Loop()
	is.True(errors.Is(err, ErrQuit))
	sc.Cleanup()
	is.Equal(hist.finalCalls, 1)
	is.Equal(hist.final[0].Score, 500)
}

func TestHistoryFailureIsNotFatal(t *testing.T) {
	is := is.New(t)
	sc, _, hist, out := setup(t, nil, "3", "WRONG", "3", "WHEEL OF FORTUNE")
	hist.appendErr = errors.New("disk full")
	is.NoErr(sc.Loop())
	is.Equal(strings.Count(out.String(), "Error updating game history: disk full"), 2)
	is.True(strings.Contains(out.String(), "The winner is: Google Bert(aka Bard) 2 with 500 points."))
}

func TestSolutionIsNotTrimmed(t *testing.T) {
	is := is.New(t)
	sc, _, hist, out := setup(t, nil, " 3 ", "  Wheel of Fortune ")
	err := sc.Loop()
	is.True(errors.Is(err, ErrQuit))
	is.Equal(hist.events, []game.Event{
		{Player: "ChatGPTv4 1", Action: game.ActionSolve, Result: game.ResultFailure, Score: 0},
	})
	is.True(strings.Contains(out.String(), "Sorry, that's not correct."))
}
