package game

const (
	DefaultVowelCost  = 250
	DefaultSolveBonus = 500
)

// Rules are the scoring constants a game is played with.
type Rules struct {
	VowelCost  int
	SolveBonus int
}

// DefaultRules returns the standard show values.
func DefaultRules() Rules {
	return Rules{
		VowelCost:  DefaultVowelCost,
		SolveBonus: DefaultSolveBonus,
	}
}
