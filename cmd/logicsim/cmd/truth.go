// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

var truthCmd = &cobra.Command{
	Use:   "truth [KIND...]",
	Short: "Print gate truth tables",
	Long: `Print the truth table of the given gate kinds, or of all logic gates.
Each table is computed by wiring INPUT gates to the gate and an OUTPUT gate
to its output, then running the editor until the circuit settles.

Examples:
  logicsim truth
  logicsim truth nand nor`,
	RunE: runTruth,
}

func init() {
	rootCmd.AddCommand(truthCmd)
}

func runTruth(cmd *cobra.Command, args []string) error {
	var kinds []logicsim.Kind
	for _, a := range args {
		k, ok := logicsim.ParseKind(a)
		if !ok {
			return errors.Errorf("unknown gate kind %q", a)
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		for _, k := range logicsim.Kinds() {
			if k.InputCount() > 0 && k.HasOutput() {
				kinds = append(kinds, k)
			}
		}
	}
	out := cmd.OutOrStdout()
	for i, k := range kinds {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := truthTable(out, k); err != nil {
			return err
		}
	}
	return nil
}

// truthTable builds the test circuit for kind k in a fresh editor and prints
// the output for every input combination.
func truthTable(w io.Writer, k logicsim.Kind) error {
	s := logicsim.DefaultSettings()
	s.SnapToGrid = false
	e := logicsim.NewEditor(s)
	n := k.InputCount()
	if n == 0 || !k.HasOutput() {
		return errors.Errorf("%v has no truth table", k)
	}
	ins := make([]int, n)
	for i := range ins {
		ins[i], _ = e.PlaceGate(logicsim.Input, r2.Vec{X: 300, Y: 100 + float64(i)*100})
	}
	g, _ := e.PlaceGate(k, r2.Vec{X: 500, Y: 150})
	o, _ := e.PlaceGate(logicsim.Output, r2.Vec{X: 700, Y: 150})
	for i, in := range ins {
		if !e.Connect(in, g, i) {
			return errors.Errorf("%v: cannot wire input %d", k, i)
		}
	}
	if !e.Connect(g, o, 0) {
		return errors.Errorf("%v: cannot wire output", k)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%v\n", k)
	for i := 0; i < n; i++ {
		fmt.Fprintf(tw, "in%d\t", i+1)
	}
	fmt.Fprintln(tw, "out")
	gates := e.Gates()
	for row := 0; row < 1<<uint(n); row++ {
		for i, in := range ins {
			v := row&(1<<uint(n-1-i)) != 0
			gates[in].Input1 = v
			fmt.Fprintf(tw, "%s\t", bit(v))
		}
		e.Settle(10)
		fmt.Fprintln(tw, bit(gates[o].Output))
	}
	return tw.Flush()
}
