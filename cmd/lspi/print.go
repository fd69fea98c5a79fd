package main

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/environment/chain"
	"github.com/samuelfneumann/golspi/policy"
)

// printPolicy prints the Q-values and greedy action of each state of
// the chain. Rewarding states are marked with a +.
func printPolicy(w io.Writer, d *chain.Chain, p *policy.Policy) error {
	rewards := d.RewardStates()

	for s := 0; s < d.NumStates(); s++ {
		state := mat.NewVecDense(1, []float64{float64(s)})
		values, err := p.QValues(state)
		if err != nil {
			return err
		}
		best, err := p.BestAction(state)
		if err != nil {
			return err
		}

		marker := aurora.White(" ")
		if s == rewards[0] || s == rewards[1] {
			marker = aurora.Yellow("+")
		}

		action := aurora.Blue(fmt.Sprintf("%-5s", d.ActionName(best)))
		if best == chain.Right {
			action = aurora.Green(fmt.Sprintf("%-5s", d.ActionName(best)))
		}

		fmt.Fprintf(w, "%3d %v %v", s, marker, action)
		for a, q := range values {
			fmt.Fprintf(w, " | %s: %8.4f", d.ActionName(a), q)
		}
		fmt.Fprintln(w)
	}
	return nil
}
