// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	routeGates []string
	routeAvoid bool
)

var routeCmd = &cobra.Command{
	Use:   "route <x1> <y1> <x2> <y2>",
	Short: "Print an orthogonal wire route",
	Long: `Print the waypoints of a wire route from (x1, y1) to (x2, y2).

Obstacles are given as KIND:X,Y where (X, Y) is the top-left corner of the
gate body. They are only avoided with --avoid, or when avoid_obstacles is set
in the settings.

Examples:
  logicsim route 100 100 400 300
  logicsim route 100 100 400 100 --avoid --gate AND:220,80`,
	Args: cobra.ExactArgs(4),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().StringArrayVarP(&routeGates, "gate", "g", nil, "obstacle gate, KIND:X,Y (repeatable)")
	routeCmd.Flags().BoolVarP(&routeAvoid, "avoid", "a", false, "route around obstacle gates")
}

func parseGate(s string) (*logicsim.Gate, error) {
	name, pos, ok := strings.Cut(s, ":")
	if !ok {
		return nil, errors.Errorf("invalid gate %q: expected KIND:X,Y", s)
	}
	k, ok := logicsim.ParseKind(name)
	if !ok {
		return nil, errors.Errorf("invalid gate %q: unknown kind", s)
	}
	xs, ys, ok := strings.Cut(pos, ",")
	if !ok {
		return nil, errors.Errorf("invalid gate %q: expected KIND:X,Y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid gate %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid gate %q", s)
	}
	return logicsim.NewGate(k, r2.Vec{X: x, Y: y}), nil
}

func runRoute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	var c [4]float64
	for i, a := range args {
		if c[i], err = strconv.ParseFloat(a, 64); err != nil {
			return errors.Wrapf(err, "coordinate %d", i+1)
		}
	}
	gates := make([]*logicsim.Gate, 0, len(routeGates))
	for _, s := range routeGates {
		g, err := parseGate(s)
		if err != nil {
			return err
		}
		gates = append(gates, g)
	}
	start, end := r2.Vec{X: c[0], Y: c[1]}, r2.Vec{X: c[2], Y: c[3]}

	r := logicsim.NewRouter(cfg.Clearance)
	r.AvoidObstacles = routeAvoid || cfg.AvoidObstacles
	var pts []r2.Vec
	if r.AvoidObstacles {
		pts = r.Route(start, end, gates)
	} else {
		pts = r.Simple(start, end)
	}
	newLogger(cmd.ErrOrStderr()).Debug("route", "waypoints", len(pts), "obstacles", len(gates), "avoid", r.AvoidObstacles)
	out := cmd.OutOrStdout()
	for _, p := range pts {
		fmt.Fprintf(out, "%g %g\n", p.X, p.Y)
	}
	return nil
}
