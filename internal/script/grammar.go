// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package script

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var cmdLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Number", Pattern: `[-+]?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `,`},
})

// Command is a single editor action.
//
// Exactly one field is set.
//
type Command struct {
	Mode    *string  `  "mode" @( "place" | "wire" | "delete" )`
	Select  *string  `| "select" @Ident`
	Place   *Place   `| "place" @@`
	Click   *Point   `| "click" @@`
	Mouse   *Point   `| "mouse" @@`
	Move    *Move    `| "move" @@`
	Delete  *int     `| "delete" @Number`
	Toggle  *int     `| "toggle" @Number`
	Connect *Connect `| "connect" @@`
	Advance *Advance `| @@`
	Cancel  bool     `| @"cancel"`
	Expect  *Expect  `| "expect" @@`
}

// Point is a canvas location. The comma is optional.
//
type Point struct {
	X float64 `@Number ","?`
	Y float64 `@Number`
}

// Place places a gate of the named kind centered on a point.
//
type Place struct {
	Kind string `@Ident`
	At   Point  `@@`
}

// Move moves the top-left corner of a gate.
//
type Move struct {
	Gate int   `@Number`
	To   Point `@@`
}

// Connect wires the output of gate From to input pin Input of gate To.
//
type Connect struct {
	From  int `@Number`
	To    int `@Number`
	Input int `@Number`
}

// Advance runs the simulation: "tick" runs N ticks, "settle" runs up to N
// ticks until the circuit is stable.
//
type Advance struct {
	Verb string `@( "tick" | "settle" )`
	N    *int   `@Number?`
}

// Expect checks the output state of a gate.
//
type Expect struct {
	Gate  int    `@Number`
	State string `@( "true" | "false" | "on" | "off" )`
}

var cmdParser = participle.MustBuild[Command](
	participle.Lexer(cmdLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.CaseInsensitive("Ident"),
	participle.UseLookahead(2),
)

// Parse parses a single command.
//
func Parse(line string) (*Command, error) {
	c, err := cmdParser.ParseString("", line)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", line)
	}
	return c, nil
}
