package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/wordwheel/wheel/alphabet"
)

const (
	EmbeddedWheel   = "embedded:wheel.json"
	EmbeddedPhrases = "embedded:phrases.json"
)

//go:embed data/wheel.json
var defaultWheel []byte

//go:embed data/phrases.json
var defaultPhrases []byte

// LoadWheel reads a wheel definition. An empty path loads the wheel that
// ships with the binary.
func LoadWheel(path string) (Wheel, error) {
	data, name, err := readContent(path, EmbeddedWheel, defaultWheel)
	if err != nil {
		return nil, err
	}
	w, err := ParseWheel(data, formatOf(name))
	if err != nil {
		return nil, &ConfigError{Path: name, Err: err}
	}
	log.Debug().Str("source", name).Int("segments", len(w)).Msg("loaded-wheel")
	return w, nil
}

// LoadPhrases reads a phrase book. An empty path loads the phrases that
// ship with the binary.
func LoadPhrases(path string) (PhraseBook, error) {
	data, name, err := readContent(path, EmbeddedPhrases, defaultPhrases)
	if err != nil {
		return nil, err
	}
	pb, err := ParsePhrases(data, formatOf(name))
	if err != nil {
		return nil, &ConfigError{Path: name, Err: err}
	}
	log.Debug().Str("source", name).Int("categories", len(pb)).Msg("loaded-phrases")
	return pb, nil
}

func readContent(path, embeddedName string, embedded []byte) ([]byte, string, error) {
	if path == "" {
		return embedded, embeddedName, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, &ConfigError{Path: path, Err: err}
	}
	return data, path, nil
}

// Format is the encoding of a content file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func formatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

func decode(data []byte, format Format, v any) error {
	if format == FormatYAML {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(v)
	}
	return json.Unmarshal(data, v)
}

// ParseWheel decodes and validates a wheel definition.
func ParseWheel(data []byte, format Format) (Wheel, error) {
	var w Wheel
	if err := decode(data, format, &w); err != nil {
		return nil, err
	}
	if len(w) == 0 {
		return nil, errors.New("wheel has no segments")
	}
	for i, s := range w {
		if !s.Kind.valid() {
			return nil, fmt.Errorf("segment %d: unknown type %q", i, s.Kind)
		}
		if strings.TrimSpace(s.Text) == "" {
			return nil, fmt.Errorf("segment %d: missing text", i)
		}
		if s.Kind == KindCash && s.Value <= 0 {
			return nil, fmt.Errorf("segment %d: cash segment needs a positive value", i)
		}
	}
	return w, nil
}

func uncallable(r rune) bool {
	return unicode.IsLetter(r) && !alphabet.IsLetter(r)
}

// ParsePhrases decodes and validates a phrase book. Every category needs at
// least one phrase, and every phrase needs at least one letter to guess.
// Letters outside A-Z are rejected since no player could ever call them.
func ParsePhrases(data []byte, format Format) (PhraseBook, error) {
	var pb PhraseBook
	if err := decode(data, format, &pb); err != nil {
		return nil, err
	}
	if len(pb) == 0 {
		return nil, errors.New("phrase book has no categories")
	}
	for cat, phrases := range pb {
		if strings.TrimSpace(cat) == "" {
			return nil, errors.New("empty category name")
		}
		if len(phrases) == 0 {
			return nil, fmt.Errorf("category %q has no phrases", cat)
		}
		for _, p := range phrases {
			if !strings.ContainsFunc(p, alphabet.IsLetter) {
				return nil, fmt.Errorf("category %q: phrase %q has nothing to guess", cat, p)
			}
			if i := strings.IndexFunc(p, uncallable); i >= 0 {
				return nil, fmt.Errorf("category %q: phrase %q has a letter that can't be called at %d", cat, p, i)
			}
		}
	}
	return pb, nil
}
