package history

import (
	"bytes"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/wordwheel/wheel/content"
	"github.com/wordwheel/wheel/game"
)

// Log is a log file read back from disk.
type Log struct {
	Header content.Phrase
	Events []game.Event
	// Scores is the final score dump, empty if the game never finished.
	Scores string
}

// ReadLog parses a log file written by FileLog.
func ReadLog(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLog(data)
}

// ParseLog parses the contents of a log file.
func ParseLog(data []byte) (*Log, error) {
	records := data
	var scores []byte
	if i := bytes.Index(data, []byte(scoresHeader)); i >= 0 {
		records = data[:i]
		scores = data[i+len(scoresHeader):]
	}
	if !gjson.ValidBytes(records) {
		return nil, fmt.Errorf("records: %w", ErrNotArray)
	}
	arr := gjson.ParseBytes(records)
	if !arr.IsArray() {
		return nil, ErrNotArray
	}
	hl := &Log{Scores: string(scores)}
	arr.ForEach(func(_, rec gjson.Result) bool {
		if rec.Get("category").Exists() {
			hl.Header = content.Phrase{
				Category: rec.Get("category").String(),
				Phrase:   rec.Get("phrase").String(),
			}
			return true
		}
		hl.Events = append(hl.Events, game.Event{
			Player: rec.Get("player").String(),
			Action: game.Action(rec.Get("action").String()),
			Result: game.Result(rec.Get("result").String()),
			Score:  int(rec.Get("score").Int()),
		})
		return true
	})
	return hl, nil
}
