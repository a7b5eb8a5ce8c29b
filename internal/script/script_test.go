// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package script_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/script"
	"github.com/db47h/logicsim/simtest"
)

func TestParse(t *testing.T) {
	td := []struct {
		line  string
		check func(c *script.Command) bool
	}{
		{"mode wire", func(c *script.Command) bool { return c.Mode != nil && *c.Mode == "wire" }},
		{"MODE Delete", func(c *script.Command) bool { return c.Mode != nil && strings.EqualFold(*c.Mode, "delete") }},
		{"select nand", func(c *script.Command) bool { return c.Select != nil && *c.Select == "nand" }},
		{"place AND 300, 200", func(c *script.Command) bool {
			return c.Place != nil && c.Place.Kind == "AND" && c.Place.At.X == 300 && c.Place.At.Y == 200
		}},
		{"click 12.5 -3", func(c *script.Command) bool { return c.Click != nil && c.Click.X == 12.5 && c.Click.Y == -3 }},
		{"mouse 1,2", func(c *script.Command) bool { return c.Mouse != nil && c.Mouse.X == 1 && c.Mouse.Y == 2 }},
		{"move 3 400 100", func(c *script.Command) bool { return c.Move != nil && c.Move.Gate == 3 && c.Move.To.X == 400 }},
		{"delete 2", func(c *script.Command) bool { return c.Delete != nil && *c.Delete == 2 }},
		{"toggle 0 # first input", func(c *script.Command) bool { return c.Toggle != nil && *c.Toggle == 0 }},
		{"connect 0 2 1", func(c *script.Command) bool {
			return c.Connect != nil && c.Connect.From == 0 && c.Connect.To == 2 && c.Connect.Input == 1
		}},
		{"tick", func(c *script.Command) bool { return c.Advance != nil && c.Advance.N == nil }},
		{"settle 10", func(c *script.Command) bool { return c.Advance != nil && *c.Advance.N == 10 }},
		{"cancel", func(c *script.Command) bool { return c.Cancel }},
		{"expect 3 false", func(c *script.Command) bool { return c.Expect != nil && c.Expect.Gate == 3 && c.Expect.State == "false" }},
	}
	for _, d := range td {
		c, err := script.Parse(d.line)
		if err != nil {
			t.Errorf("%q: %v", d.line, err)
			continue
		}
		if !d.check(c) {
			t.Errorf("%q: unexpected command %+v", d.line, *c)
		}
	}
}

func TestParse_errors(t *testing.T) {
	for _, line := range []string{
		"jump 1 2",
		"place AND 1",
		"delete x",
		"delete 1.5",
		"mode draw",
		"connect 0 1",
		"expect 1 maybe",
	} {
		if c, err := script.Parse(line); err == nil {
			t.Errorf("%q: expected error, got %+v", line, *c)
		}
	}
}

const andScript = `
name: and gate
steps:
  - place INPUT 330 120
  - place INPUT 330 320
  - place AND 540 225
  - place OUTPUT 730 220
  - connect 0 2 0
  - connect 1 2 1
  - connect 2 3 0
  - settle
  - expect 3 false
  - toggle 0
  - settle
  - expect 3 false
  - toggle 1
  - tick 2
  - expect 3 true
`

func TestRun(t *testing.T) {
	s, err := script.Decode(strings.NewReader(andScript))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "and gate" || len(s.Steps) != 15 {
		t.Fatalf("unexpected script: %q, %d steps", s.Name, len(s.Steps))
	}
	if s.Steps[0].Line != 4 {
		t.Errorf("first step on line %d, expected 4", s.Steps[0].Line)
	}
	e := logicsim.NewEditor(simtest.Settings())
	if err := script.Run(e, s.Steps); err != nil {
		t.Fatal(err)
	}
	if len(e.Gates()) != 4 || len(e.Wires()) != 3 {
		t.Fatalf("%d gates, %d wires", len(e.Gates()), len(e.Wires()))
	}
}

func TestRun_clicks(t *testing.T) {
	// INPUT body at (300, 100): output pin at (368, 120).
	// OUTPUT body at (500, 100): input pin at (492, 120).
	src := `
steps:
  - select INPUT
  - click 330 120
  - select OUTPUT
  - click 530 120
  - select none
  - mode wire
  - click 368 120
  - click 492, 120
  - mode place
  - click 330 120
  - tick
  - expect 1 on
  - mode delete
  - click 430 120
  - tick
  - expect 1 off
`
	s, err := script.Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	e := logicsim.NewEditor(simtest.Settings())
	if err := script.Run(e, s.Steps); err != nil {
		t.Fatal(err)
	}
	if len(e.Wires()) != 0 || e.Mode() != logicsim.ModeDelete {
		t.Fatal("wire not deleted")
	}
}

func TestRun_settleLimit(t *testing.T) {
	// INPUT -> OUTPUT needs exactly 2 ticks to report a stable circuit.
	src := `
steps:
  - place INPUT 330 120
  - place OUTPUT 530 120
  - connect 0 1 0
  - toggle 0
  - settle 2
  - expect 1 on
  - toggle 0
  - settle 1
`
	s, err := script.Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	err = script.Run(logicsim.NewEditor(simtest.Settings()), s.Steps)
	if err == nil || !strings.Contains(err.Error(), "not stable after 1 ticks") {
		t.Fatalf("expected an unstable error on the last step, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 10") {
		t.Errorf("error not reported on line 10: %v", err)
	}
}

func TestRun_errors(t *testing.T) {
	td := []struct {
		steps string
		msg   string
	}{
		{"  - place FOO 300 300\n", "unknown gate kind"},
		{"  - place AND 100 300\n", "cannot place"},
		{"  - delete 0\n", "no gate 0"},
		{"  - place AND 300 300\n  - toggle 0\n", "not an input"},
		{"  - place AND 300 300\n  - connect 0 0 0\n", "cannot connect"},
		{"  - place INPUT 300 300\n  - toggle 0\n  - tick\n  - expect 0 false\n", "expected false"},
		{"  - expect 4 true\n", "no gate 4"},
	}
	for _, d := range td {
		s, err := script.Decode(strings.NewReader("steps:\n" + d.steps))
		if err != nil {
			t.Fatal(err)
		}
		err = script.Run(logicsim.NewEditor(simtest.Settings()), s.Steps)
		if err == nil || !strings.Contains(err.Error(), d.msg) {
			t.Errorf("%q: expected error containing %q, got %v", d.steps, d.msg, err)
		}
		if err != nil && !strings.Contains(err.Error(), "line ") {
			t.Errorf("%q: no line number in %v", d.steps, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(p, []byte("steps:\n  - click 1 2\n  - warp 9\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := script.Load(p)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected a line 3 error, got %v", err)
	}
	if _, err = script.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error, got nil")
	}
	p = filepath.Join(dir, "empty.yaml")
	if err = os.WriteFile(p, nil, 0644); err != nil {
		t.Fatal(err)
	}
	s, err := script.Load(p)
	if err != nil || len(s.Steps) != 0 {
		t.Fatalf("empty script: %v, %v", s, err)
	}
}
