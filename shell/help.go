package shell

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/wordwheel/wheel/game"
)

//go:embed helptext/rules.txt
var rulesText string

func usage(w io.Writer, rules game.Rules) {
	io.WriteString(w, fmt.Sprintf(rulesText, rules.VowelCost, rules.SolveBonus))
}
