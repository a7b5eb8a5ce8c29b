// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/script"
	"github.com/db47h/logicsim/render"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	pngPath   string
	showWires bool
)

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Replay an editing session",
	Long: `Replay the steps of a session script against an empty editor, then print
the gates and their output state.

Examples:
  logicsim run session.yaml
  logicsim run --wires --png snapshot.png session.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&pngPath, "png", "p", "", "write a snapshot of the final frame")
	runCmd.Flags().BoolVarP(&showWires, "wires", "w", false, "list wires and their routes")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := script.Load(args[0])
	if err != nil {
		return err
	}
	e := newEditor(cmd, cfg)
	runErr := script.Run(e, s.Steps)

	out := cmd.OutOrStdout()
	name := s.Name
	if name == "" {
		name = args[0]
	}
	fmt.Fprintf(out, "%s: %d steps, %d ticks\n\n", name, len(s.Steps), e.Ticks())
	printGates(out, e)
	if showWires {
		fmt.Fprintln(out)
		printWires(out, e)
	}
	if pngPath != "" {
		if err := writeSnapshot(e, cfg.CanvasWidth, cfg.CanvasHeight); err != nil {
			return err
		}
	}
	return runErr
}

func printGates(w io.Writer, e *logicsim.Editor) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GATE\tKIND\tX\tY\tIN\tOUT")
	for i, g := range e.Gates() {
		in := make([]string, g.InputCount())
		for j := range in {
			in[j] = bit(g.Input(j))
		}
		fmt.Fprintf(tw, "%d\t%v\t%g\t%g\t%s\t%s\n", i, g.Kind(), g.Pos.X, g.Pos.Y, strings.Join(in, ","), bit(g.Output))
	}
	tw.Flush()
}

func printWires(w io.Writer, e *logicsim.Editor) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WIRE\tFROM\tTO\tSTATE\tROUTE")
	for i, wr := range e.Wires() {
		pts := make([]string, len(wr.Waypoints))
		for j, p := range wr.Waypoints {
			pts[j] = fmt.Sprintf("(%g,%g)", p.X, p.Y)
		}
		fmt.Fprintf(tw, "%d\t%d\t%d.%d\t%s\t%s\n", i, wr.From, wr.To, wr.ToInput, bit(wr.State), strings.Join(pts, " "))
	}
	tw.Flush()
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func writeSnapshot(e *logicsim.Editor, w, h int) (err error) {
	f, err := os.Create(pngPath)
	if err != nil {
		return errors.Wrap(err, "snapshot")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "snapshot")
		}
	}()
	return render.WritePNG(f, render.Scene(e.Scene(), w, h))
}
