/*
Package logicsim implements the simulation and wiring engine of an interactive
logic circuit editor.

Gates are placed on a canvas and stored in a gate collection owned by an
Editor. Wires link the output pin of a gate to an input pin of another gate and
reference gates by their index in that collection. A Wiring engine owns the
wires, handles click based wire creation and deletion and propagates signals.

Propagation is a single pass per frame (see Wiring.UpdateSignals): a signal
crosses one combinational gate per tick, so a chain of N gates settles after N
frames. Circuits with feedback loops are not supported.

Rendering is left to the caller: Editor.Scene returns plain draw data
(positions, states, colors). The render sub-package rasterizes it.

A minimal headless session:

	e := logicsim.NewEditor(logicsim.DefaultSettings())
	in, _ := e.PlaceGate(logicsim.Input, r2.Vec{X: 300, Y: 300})
	out, _ := e.PlaceGate(logicsim.Output, r2.Vec{X: 600, Y: 300})
	e.Connect(in, out, 0)
	e.ToggleInput(in)
	e.Update(r2.Vec{})
	fmt.Println(e.Gates()[out].Output) // true

*/
package logicsim
