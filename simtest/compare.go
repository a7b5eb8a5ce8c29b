// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/logicsim"
)

// maxExhaustive is the number of inputs above which Compare switches from
// exhaustive to random testing.
const maxExhaustive = 12

func inputString(in []bool) string {
	var b strings.Builder
	for i, v := range in {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "in%d=%v", i, v)
	}
	return b.String()
}

// Compare checks a circuit against a reference function.
//
// The Input gates ins of e are driven with every input combination (up to 12
// inputs, random combinations beyond that). After each change, the circuit is
// left to settle and the outputs of the gates outs are compared to the values
// returned by ref for the same inputs.
//
func Compare(t testing.TB, e *logicsim.Editor, ins, outs []int, ref func(in []bool) []bool) {
	t.Helper()
	gates := e.Gates()
	for _, i := range ins {
		if i < 0 || i >= len(gates) || gates[i].Kind() != logicsim.Input {
			t.Fatalf("gate %d is not an input", i)
		}
	}
	for _, o := range outs {
		if o < 0 || o >= len(gates) {
			t.Fatalf("no gate %d", o)
		}
	}

	in := make([]bool, len(ins))
	limit := len(gates) + 2
	start := time.Now()
	ticks := e.Ticks()

	check := func() {
		t.Helper()
		for k, i := range ins {
			gates[i].Input1 = in[k]
		}
		if _, ok := e.Settle(limit); !ok {
			t.Fatalf("%s: circuit not stable after %d ticks", inputString(in), limit)
		}
		want := ref(in)
		if len(want) != len(outs) {
			t.Fatalf("reference returned %d outputs, expected %d", len(want), len(outs))
		}
		for k, o := range outs {
			if got := gates[o].Output; got != want[k] {
				t.Fatalf("\nExpected %s => gate %d (%v) = %v\nGot %v", inputString(in), o, gates[o].Kind(), want[k], got)
			}
		}
	}

	if len(ins) <= maxExhaustive {
		for v := 0; v < 1<<uint(len(ins)); v++ {
			for k := range in {
				in[k] = v&(1<<uint(len(in)-1-k)) != 0
			}
			check()
		}
	} else {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for it := 0; it < 1<<maxExhaustive; it++ {
			for k := range in {
				in[k] = rnd.Int63()&(1<<62) != 0
			}
			check()
		}
	}

	t.Logf("%d gates, %d wires. %d ticks in %v", len(gates), len(e.Wires()), e.Ticks()-ticks, time.Since(start))
}
