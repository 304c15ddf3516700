// Package shell is the console front end: it shows the board, reads each
// player's decision through readline and feeds it to the turn engine,
// writing every resulting event to the game log.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/inancgumus/screen"
	"github.com/rs/zerolog/log"

	"github.com/wordwheel/wheel/alphabet"
	"github.com/wordwheel/wheel/config"
	"github.com/wordwheel/wheel/content"
	"github.com/wordwheel/wheel/game"
	"github.com/wordwheel/wheel/history"
)

// ErrQuit is returned by Loop when the input ends or the user interrupts
// the game before it is solved.
var ErrQuit = errors.New("game abandoned")

// Prompter reads one line of input. *readline.Instance satisfies it.
type Prompter interface {
	Readline() (string, error)
	SetPrompt(p string)
	Close() error
}

// EventLog receives the game history. *history.FileLog satisfies it.
type EventLog interface {
	Start(p content.Phrase) error
	Append(evt game.Event) error
	WriteFinalScores(players []game.Player) error
}

type ShellController struct {
	l       Prompter
	out     io.Writer
	config  *config.Config
	store   *content.Store
	history EventLog

	// mu guards game and history writes; Cleanup can run from another
	// goroutine while the loop is blocked on input.
	mu       sync.Mutex
	game     *game.Game
	finalize sync.Once
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController sets up readline on the terminal.
func NewShellController(cfg *config.Config, store *content.Store, hist EventLog) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mwheel>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigReadlineHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	return newShellController(cfg, store, hist, l, l.Stdout()), nil
}

func newShellController(cfg *config.Config, store *content.Store, hist EventLog,
	l Prompter, out io.Writer) *ShellController {

	return &ShellController{
		l:       l,
		out:     out,
		config:  cfg,
		store:   store,
		history: hist,
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// NewGame draws the category and phrase and opens the game log. A failure
// to write the log is reported but doesn't stop the game.
func (sc *ShellController) NewGame() error {
	names, err := sc.config.PlayerNames()
	if err != nil {
		return err
	}
	p := sc.store.DrawCategoryAndPhrase()
	g, err := game.NewGame(sc.config.Rules(), names, p, sc.store)
	if err != nil {
		return err
	}

	sc.mu.Lock()
	sc.game = g
	if err := sc.history.Start(p); err != nil {
		sc.showMessage("Error starting game history: " + err.Error())
	}
	sc.mu.Unlock()

	sc.showMessage("Welcome to Wheel of Fortune!")
	sc.showMessage("The category is: " + p.Category)
	return nil
}

// Loop plays turns until the puzzle is solved, then announces the winner.
// It returns ErrQuit if the input runs out first.
func (sc *ShellController) Loop() error {
	if sc.game == nil {
		return errors.New("no game in progress, call NewGame first")
	}
	for sc.game.Playing() {
		if err := sc.playTurn(); err != nil {
			log.Debug().Err(err).Msg("leaving-loop")
			return err
		}
	}
	winner, err := history.DetermineWinner(sc.game.Players())
	if err != nil {
		return err
	}
	sc.showMessage(fmt.Sprintf("The winner is: %v with %v points.", winner.Name, winner.Score))
	return nil
}

// Cleanup writes the final scores to the game log and releases the
// terminal. It only does anything the first time it is called, so it is
// safe to call it both when the loop ends and when the process is
// interrupted.
func (sc *ShellController) Cleanup() {
	sc.finalize.Do(func() {
		sc.mu.Lock()
		defer sc.mu.Unlock()
		defer sc.l.Close()
		if sc.game == nil {
			return
		}
		if err := sc.history.WriteFinalScores(sc.game.Players()); err != nil {
			sc.showMessage("Error writing scores: " + err.Error())
		}
	})
}

// prompt reads a menu choice or a letter, with surrounding blanks removed.
func (sc *ShellController) prompt(p string) (string, error) {
	line, err := sc.readLine(p)
	return strings.TrimSpace(line), err
}

// readLine returns the line exactly as typed.
func (sc *ShellController) readLine(p string) (string, error) {
	sc.l.SetPrompt(p)
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return "", ErrQuit
			}
			continue
		} else if err == io.EOF {
			return "", ErrQuit
		} else if err != nil {
			return "", err
		}
		return line, nil
	}
}

func (sc *ShellController) menu() string {
	if sc.game.CanBuyVowel() {
		return "What do you want to do? (1- Spin the wheel, 2- Buy a vowel, 3- Solve the puzzle, 4- Help): "
	}
	return "What do you want to do? (1- Spin the wheel, 3- Solve the puzzle, 4- Help): "
}

func (sc *ShellController) playTurn() error {
	if sc.config.GetBool(config.ConfigClearScreen) {
		screen.Clear()
		screen.MoveTopLeft()
	}
	p := sc.game.CurrentPlayer()
	sc.showMessage(fmt.Sprintf("It's %v's turn. You have %v points.", p.Name, p.Score))
	sc.showMessage(sc.game.Display())

	action, err := sc.prompt(sc.menu())
	if err != nil {
		return err
	}
	switch {
	case action == "1":
		return sc.spin()
	case action == "2" && sc.game.CanBuyVowel():
		return sc.buyVowel()
	case action == "3":
		return sc.solve()
	case action == "4":
		usage(sc.out, sc.game.Rules())
	default:
		sc.showMessage("Please choose one of the options listed.")
	}
	return nil
}

// apply runs one engine call and logs the event it produced, if any.
func (sc *ShellController) apply(action func() (game.Outcome, error)) (game.Outcome, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	out, err := action()
	if err != nil {
		return out, err
	}
	if out.Event != nil {
		if err := sc.history.Append(*out.Event); err != nil {
			sc.showMessage("Error updating game history: " + err.Error())
		}
	}
	return out, nil
}

func invalidLetter(err error) bool {
	return errors.Is(err, alphabet.ErrNotSingleLetter) || errors.Is(err, alphabet.ErrWrongAlphabet)
}

// askLetter keeps asking until try accepts the input.
func (sc *ShellController) askLetter(prompt, complaint string,
	try func(string) (game.Outcome, error)) (game.Outcome, error) {

	for {
		line, err := sc.prompt(prompt)
		if err != nil {
			return game.Outcome{}, err
		}
		out, err := sc.apply(func() (game.Outcome, error) { return try(line) })
		if invalidLetter(err) {
			sc.showMessage(complaint)
			continue
		}
		return out, err
	}
}

func (sc *ShellController) spin() error {
	out, err := sc.apply(sc.game.Spin)
	if err != nil {
		return err
	}
	sc.showMessage("You spun: " + out.Segment.Text)
	switch out.Segment.Kind {
	case content.KindBankrupt:
		sc.showMessage("Bankrupt! You lose all of your points.")
		return nil
	case content.KindLoseTurn:
		sc.showMessage("You lose your turn.")
		return nil
	}
	out, err = sc.askLetter("Enter your guess: ", "Invalid guess. Please enter a consonant.",
		sc.game.GuessConsonant)
	if err != nil {
		return err
	}
	sc.reportLetter(out)
	return nil
}

func (sc *ShellController) buyVowel() error {
	out, err := sc.askLetter("Enter a vowel: ", "Invalid input. Please enter a vowel.",
		sc.game.BuyVowel)
	if err != nil {
		return err
	}
	sc.reportLetter(out)
	return nil
}

func (sc *ShellController) reportLetter(out game.Outcome) {
	switch out.Occurrences {
	case 0:
		sc.showMessage(fmt.Sprintf("Sorry, there is no %c.", out.Letter))
	case 1:
		sc.showMessage(fmt.Sprintf("There is one %c.", out.Letter))
	default:
		sc.showMessage(fmt.Sprintf("There are %d %c's.", out.Occurrences, out.Letter))
	}
}

func (sc *ShellController) solve() error {
	// The solution has to match exactly, blanks included.
	guess, err := sc.readLine("Enter your solution: ")
	if err != nil {
		return err
	}
	out, err := sc.apply(func() (game.Outcome, error) { return sc.game.Solve(guess) })
	if err != nil {
		return err
	}
	if out.Solved {
		sc.showMessage("Congratulations, you solved the puzzle!")
		sc.showMessage(sc.game.Display())
	} else {
		sc.showMessage("Sorry, that's not correct.")
	}
	return nil
}
