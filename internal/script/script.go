// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package script replays editor sessions.
//
// A script is a YAML document with an optional name and a list of steps, one
// command per step:
//
//	name: and gate
//	steps:
//	  - place INPUT 330 120
//	  - place INPUT 330 320
//	  - place AND 540 220
//	  - place OUTPUT 730 220
//	  - connect 0 2 0
//	  - connect 1 2 1
//	  - connect 2 3 0
//	  - toggle 0
//	  - toggle 1
//	  - settle
//	  - expect 3 true
//
// Commands:
//
//	mode place|wire|delete   switch editor mode
//	select KIND|none         select the gate kind placed by clicks
//	place KIND x, y          place a gate centered on (x, y)
//	click x, y               click at (x, y)
//	mouse x, y               run one frame with the mouse at (x, y)
//	move GATE x, y           move the top-left corner of a gate
//	delete GATE              delete a gate and its wires
//	toggle GATE              toggle an INPUT gate
//	connect FROM TO INPUT    wire the output of FROM to an input pin of TO
//	tick [N]                 run N propagation ticks (default 1)
//	settle [N]               tick until stable, at most N times (default 100)
//	cancel                   abort the pending wire
//	expect GATE true|false   check the output state of a gate
//
// Anything after a '#' is a comment.
//
package script

import (
	"io"
	"os"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

// DefaultSettleLimit is the tick limit of a settle command without argument.
//
const DefaultSettleLimit = 100

// A Step is a parsed command and the script line it comes from.
//
type Step struct {
	Line int
	*Command
}

// A Script is a named list of steps.
//
type Script struct {
	Name  string
	Steps []Step
}

type document struct {
	Name  string      `yaml:"name"`
	Steps []yaml.Node `yaml:"steps"`
}

// Decode reads a script from r.
//
func Decode(r io.Reader) (*Script, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return &Script{}, nil
		}
		return nil, errors.Wrap(err, "decode script")
	}
	s := &Script{Name: doc.Name, Steps: make([]Step, 0, len(doc.Steps))}
	for i := range doc.Steps {
		n := &doc.Steps[i]
		var line string
		if err := n.Decode(&line); err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := Parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		s.Steps = append(s.Steps, Step{Line: n.Line, Command: c})
	}
	return s, nil
}

// Load reads the script file at path.
//
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load script")
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return s, nil
}

// Run replays steps against e. It stops at the first step that fails:
// explicit edits (place, move, delete, toggle, connect) rejected by the
// editor, unknown gate kinds, and failed expectations. Clicks never fail.
//
func Run(e *logicsim.Editor, steps []Step) error {
	for _, s := range steps {
		if err := run(e, s.Command); err != nil {
			return errors.Wrapf(err, "line %d", s.Line)
		}
	}
	return nil
}

func run(e *logicsim.Editor, c *Command) error {
	switch {
	case c.Mode != nil:
		e.SetMode(parseMode(*c.Mode))
	case c.Select != nil:
		if strings.EqualFold(*c.Select, "none") {
			e.ClearSelection()
			break
		}
		k, err := kind(*c.Select)
		if err != nil {
			return err
		}
		e.SelectKind(k)
	case c.Place != nil:
		k, err := kind(c.Place.Kind)
		if err != nil {
			return err
		}
		if _, ok := e.PlaceGate(k, c.Place.At.vec()); !ok {
			return errors.Errorf("cannot place %v at (%v, %v)", k, c.Place.At.X, c.Place.At.Y)
		}
	case c.Click != nil:
		e.Click(c.Click.vec())
	case c.Mouse != nil:
		e.Update(c.Mouse.vec())
	case c.Move != nil:
		if !e.MoveGate(c.Move.Gate, c.Move.To.vec()) {
			return errors.Errorf("no gate %d", c.Move.Gate)
		}
	case c.Delete != nil:
		if !e.DeleteGate(*c.Delete) {
			return errors.Errorf("no gate %d", *c.Delete)
		}
	case c.Toggle != nil:
		if !e.ToggleInput(*c.Toggle) {
			return errors.Errorf("gate %d is not an input", *c.Toggle)
		}
	case c.Connect != nil:
		w := c.Connect
		if !e.Connect(w.From, w.To, w.Input) {
			return errors.Errorf("cannot connect %d to %d.%d", w.From, w.To, w.Input)
		}
	case c.Advance != nil:
		a := c.Advance
		if strings.EqualFold(a.Verb, "settle") {
			n := DefaultSettleLimit
			if a.N != nil {
				n = *a.N
			}
			if _, ok := e.Settle(n); !ok {
				return errors.Errorf("circuit not stable after %d ticks", n)
			}
			break
		}
		n := 1
		if a.N != nil {
			n = *a.N
		}
		for i := 0; i < n; i++ {
			e.Tick()
		}
	case c.Cancel:
		e.CancelWire()
	case c.Expect != nil:
		x := c.Expect
		gates := e.Gates()
		if x.Gate < 0 || x.Gate >= len(gates) {
			return errors.Errorf("no gate %d", x.Gate)
		}
		want := strings.EqualFold(x.State, "true") || strings.EqualFold(x.State, "on")
		if got := gates[x.Gate].Output; got != want {
			return errors.Errorf("gate %d (%v): expected %v, got %v", x.Gate, gates[x.Gate].Kind(), want, got)
		}
	}
	return nil
}

func (p Point) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func kind(name string) (logicsim.Kind, error) {
	k, ok := logicsim.ParseKind(name)
	if !ok {
		return 0, errors.Errorf("unknown gate kind %q", name)
	}
	return k, nil
}

func parseMode(s string) logicsim.Mode {
	switch strings.ToLower(s) {
	case "wire":
		return logicsim.ModeWiring
	case "delete":
		return logicsim.ModeDelete
	}
	return logicsim.ModePlacement
}
