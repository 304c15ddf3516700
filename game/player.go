package game

import "fmt"

// Player is a contestant. Score is never clamped; it may go below zero.
type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func (p Player) String() string {
	return fmt.Sprintf("%v: %v", p.Name, p.Score)
}

type playerStates []*Player

func newPlayerStates(names []string) playerStates {
	ps := make(playerStates, len(names))
	for i, n := range names {
		ps[i] = &Player{Name: n}
	}
	return ps
}

func (p playerStates) snapshot() []Player {
	ret := make([]Player, len(p))
	for i := range p {
		ret[i] = *p[i]
	}
	return ret
}
