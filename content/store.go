package content

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"
)

// Randomizer is the source of every draw. *frand.RNG satisfies it.
type Randomizer interface {
	Intn(n int) int
}

const (
	seedLen    = 32
	rngBufSize = 1024
	rngRounds  = 12
)

// NewRandomizer returns a cryptographically seeded generator when seed is
// empty. Any other seed gives a reproducible sequence of draws.
func NewRandomizer(seed string) Randomizer {
	if seed == "" {
		return frand.New()
	}
	key := make([]byte, seedLen)
	for i := 0; i < seedLen/8; i++ {
		h := xxhash.Sum64String(fmt.Sprintf("%d:%s", i, seed))
		binary.LittleEndian.PutUint64(key[i*8:], h)
	}
	log.Debug().Str("seed", seed).Msg("using-seeded-randomizer")
	return frand.NewCustom(key, rngBufSize, rngRounds)
}

// Store hands out uniform draws from the loaded wheel and phrase book. It
// keeps no state between draws besides the randomizer.
type Store struct {
	wheel      Wheel
	phrases    PhraseBook
	categories []string
	rng        Randomizer
}

// NewStore wraps already validated content. Categories are sorted so that a
// seeded randomizer always yields the same game.
func NewStore(wheel Wheel, phrases PhraseBook, rng Randomizer) *Store {
	cats := lo.Keys(phrases)
	sort.Strings(cats)
	return &Store{
		wheel:      wheel,
		phrases:    phrases,
		categories: cats,
		rng:        rng,
	}
}

// Load reads both content files and builds a store from them.
func Load(wheelPath, phrasesPath string, rng Randomizer) (*Store, error) {
	w, err := LoadWheel(wheelPath)
	if err != nil {
		return nil, err
	}
	pb, err := LoadPhrases(phrasesPath)
	if err != nil {
		return nil, err
	}
	return NewStore(w, pb, rng), nil
}

// DrawSegment picks a segment uniformly at random, with replacement.
func (s *Store) DrawSegment() Segment {
	return s.wheel[s.rng.Intn(len(s.wheel))]
}

// DrawCategoryAndPhrase picks a category uniformly, then a phrase within
// that category uniformly.
func (s *Store) DrawCategoryAndPhrase() Phrase {
	cat := s.categories[s.rng.Intn(len(s.categories))]
	phrases := s.phrases[cat]
	return Phrase{Category: cat, Phrase: phrases[s.rng.Intn(len(phrases))]}
}

func (s *Store) Wheel() Wheel {
	return s.wheel
}

func (s *Store) Categories() []string {
	return s.categories
}
