// Package history keeps the per-game log file: a JSON array holding the
// category/phrase header followed by one record per game event, and, once
// the game is over, a plain text dump of the final scores. The log is a
// side effect only; the engine never reads it back.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/wordwheel/wheel/content"
	"github.com/wordwheel/wheel/game"
)

const (
	timestampFormat = "20060102150405"
	scoresHeader    = "\nCurrent scores:\n"
)

var ErrNotArray = errors.New("history is not a JSON array")

// FileName is the log name for a game started at t.
func FileName(t time.Time) string {
	return "log_" + t.Format(timestampFormat) + ".json"
}

// FileLog is the log of a single game.
type FileLog struct {
	mu   sync.Mutex
	path string
}

// NewFileLog returns the log for a game started at started. Nothing is
// written until Start or Append is called.
func NewFileLog(dir string, started time.Time) *FileLog {
	return &FileLog{path: filepath.Join(dir, FileName(started))}
}

func (l *FileLog) Path() string {
	return l.path
}

// Start creates the log with the category and phrase of the game as its
// first record, replacing any previous content.
func (l *FileLog) Start(p content.Phrase) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	raw, err := json.Marshal([]content.Phrase{p})
	if err != nil {
		return err
	}
	log.Debug().Str("path", l.path).Msg("starting-history")
	return os.WriteFile(l.path, raw, 0644)
}

// Append reads the existing records, adds evt and rewrites the file. A
// missing or empty file counts as no records.
func (l *FileLog) Append(evt game.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("[]")
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsArray() {
		return fmt.Errorf("%v: %w", l.path, ErrNotArray)
	}
	raw, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	data, err = sjson.SetRawBytes(data, "-1", raw)
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0644)
}

// WriteFinalScores appends a human-readable line per player after the JSON
// records.
func (l *FileLog) WriteFinalScores(players []game.Player) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	lines := lo.Map(players, func(p game.Player, _ int) string {
		return p.String() + "\n"
	})
	_, err = f.WriteString(scoresHeader + strings.Join(lines, ""))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		log.Info().Str("path", l.path).Msg("wrote-final-scores")
	}
	return err
}

// DetermineWinner returns the player with the highest score. Ties go to
// the player that comes first in turn order.
func DetermineWinner(players []game.Player) (game.Player, error) {
	if len(players) == 0 {
		return game.Player{}, game.ErrNoPlayers
	}
	return lo.MaxBy(players, func(a, b game.Player) bool {
		return a.Score > b.Score
	}), nil
}
