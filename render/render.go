// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package render rasterizes editor scenes.
//
// Scene draws a logicsim.Scene into an RGBA image: sidebar, wires, pin
// highlight, wire preview, gate bodies with their labels and pins. Shapes are
// anti-aliased with golang.org/x/image/vector, text uses the basicfont face.
//
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

// Palette.
//
var (
	Background = color.RGBA{245, 245, 245, 255}
	Sidebar    = color.RGBA{80, 80, 80, 255}
	Off        = color.RGBA{80, 80, 80, 255}
	On         = color.RGBA{230, 41, 55, 255}
	Hover      = color.RGBA{255, 161, 0, 255}
	Preview    = color.RGBA{253, 249, 0, 255}
	Border     = color.RGBA{0, 0, 0, 255}
	Text       = color.RGBA{255, 255, 255, 255}
	StateOn    = color.RGBA{0, 158, 47, 255}
	Selected   = color.RGBA{253, 249, 0, 255}
)

var validity = [...]color.RGBA{
	logicsim.Neutral: {253, 249, 0, 255},
	logicsim.Valid:   {0, 228, 48, 255},
	logicsim.Invalid: {230, 41, 55, 255},
}

const (
	wireWidth = 3
	dotRadius = 3
	border    = 2
)

type canvas struct {
	img  *image.RGBA
	r    *vector.Rasterizer
	face font.Face
}

func newCanvas(w, h int) *canvas {
	return &canvas{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		r:    vector.NewRasterizer(w, h),
		face: basicfont.Face7x13,
	}
}

// paint fills the current path with c and starts a new one.
func (cv *canvas) paint(c color.Color) {
	b := cv.img.Bounds()
	cv.r.Draw(cv.img, b, image.NewUniform(c), image.Point{})
	cv.r.Reset(b.Dx(), b.Dy())
}

func (cv *canvas) rect(b r2.Box, c color.Color) {
	cv.r.MoveTo(float32(b.Min.X), float32(b.Min.Y))
	cv.r.LineTo(float32(b.Max.X), float32(b.Min.Y))
	cv.r.LineTo(float32(b.Max.X), float32(b.Max.Y))
	cv.r.LineTo(float32(b.Min.X), float32(b.Max.Y))
	cv.r.ClosePath()
	cv.paint(c)
}

func (cv *canvas) frame(b r2.Box, w float64, c color.Color) {
	cv.rect(r2.Box{Min: b.Min, Max: r2.Vec{X: b.Max.X, Y: b.Min.Y + w}}, c)
	cv.rect(r2.Box{Min: r2.Vec{X: b.Min.X, Y: b.Max.Y - w}, Max: b.Max}, c)
	cv.rect(r2.Box{Min: b.Min, Max: r2.Vec{X: b.Min.X + w, Y: b.Max.Y}}, c)
	cv.rect(r2.Box{Min: r2.Vec{X: b.Max.X - w, Y: b.Min.Y}, Max: b.Max}, c)
}

func (cv *canvas) line(a, b r2.Vec, w float64, c color.Color) {
	d := r2.Sub(b, a)
	n := r2.Norm(d)
	if n == 0 {
		return
	}
	// half-width normal
	o := r2.Scale(w/(2*n), r2.Vec{X: -d.Y, Y: d.X})
	p := []r2.Vec{r2.Add(a, o), r2.Add(b, o), r2.Sub(b, o), r2.Sub(a, o)}
	cv.r.MoveTo(float32(p[0].X), float32(p[0].Y))
	for _, q := range p[1:] {
		cv.r.LineTo(float32(q.X), float32(q.Y))
	}
	cv.r.ClosePath()
	cv.paint(c)
}

func (cv *canvas) polyline(pts []r2.Vec, w float64, c color.Color) {
	for i := 1; i < len(pts); i++ {
		cv.line(pts[i-1], pts[i], w, c)
	}
	// square joints
	for i := 1; i < len(pts)-1; i++ {
		h := r2.Vec{X: w / 2, Y: w / 2}
		cv.rect(r2.Box{Min: r2.Sub(pts[i], h), Max: r2.Add(pts[i], h)}, c)
	}
}

// kappa is the cubic Bézier control distance for a quarter circle.
const kappa = 0.5522847498

func (cv *canvas) circle(p r2.Vec, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	k := r * kappa
	x, y := p.X, p.Y
	f := func(v float64) float32 { return float32(v) }
	cv.r.MoveTo(f(x+r), f(y))
	cv.r.CubeTo(f(x+r), f(y+k), f(x+k), f(y+r), f(x), f(y+r))
	cv.r.CubeTo(f(x-k), f(y+r), f(x-r), f(y+k), f(x-r), f(y))
	cv.r.CubeTo(f(x-r), f(y-k), f(x-k), f(y-r), f(x), f(y-r))
	cv.r.CubeTo(f(x+k), f(y-r), f(x+r), f(y-k), f(x+r), f(y))
	cv.r.ClosePath()
	cv.paint(c)
}

// text draws s centered on p.
func (cv *canvas) text(p r2.Vec, s string, c color.Color) {
	d := &font.Drawer{Dst: cv.img, Src: image.NewUniform(c), Face: cv.face}
	m := cv.face.Metrics()
	w := d.MeasureString(s)
	h := m.Ascent + m.Descent
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(math.Round(p.X*64)) - w/2,
		Y: fixed.Int26_6(math.Round(p.Y*64)) - h/2 + m.Ascent,
	}
	d.DrawString(s)
}

func modeLabel(m logicsim.Mode) (string, color.RGBA) {
	switch m {
	case logicsim.ModeWiring:
		return "WIRE MODE", color.RGBA{255, 161, 0, 255}
	case logicsim.ModeDelete:
		return "DELETE MODE", color.RGBA{230, 41, 55, 255}
	}
	return "PLACE MODE", color.RGBA{0, 228, 48, 255}
}

func (cv *canvas) sidebar(s *logicsim.Scene) {
	if s.Sidebar <= 0 {
		return
	}
	h := float64(cv.img.Bounds().Dy())
	cv.rect(r2.Box{Max: r2.Vec{X: s.Sidebar, Y: h}}, Sidebar)
	l, c := modeLabel(s.Mode)
	cv.text(r2.Vec{X: s.Sidebar / 2, Y: 20}, l, c)
	if s.Mode != logicsim.ModePlacement {
		return
	}
	for i, k := range logicsim.Kinds() {
		b := r2.Box{
			Min: r2.Vec{X: 20, Y: 60 + float64(i)*55},
			Max: r2.Vec{X: s.Sidebar - 20, Y: 100 + float64(i)*55},
		}
		cv.rect(b, k.Color())
		cv.text(r2.Scale(0.5, r2.Add(b.Min, b.Max)), k.Label(), Text)
		if s.HasSelect && s.Selected == k {
			cv.frame(b, 3, Selected)
		} else {
			cv.frame(b, border, Border)
		}
	}
}

func (cv *canvas) gate(g *logicsim.GateView, pinRadius float64) {
	b := g.Bounds
	cv.rect(b, g.Color)
	center := r2.Scale(0.5, r2.Add(b.Min, b.Max))
	switch g.Kind {
	case logicsim.Input, logicsim.Output:
		if g.Output {
			cv.text(center, "1", StateOn)
		} else {
			cv.text(center, "0", On)
		}
	default:
		cv.text(center, g.Label, Text)
	}
	cv.frame(b, border, Border)
	for _, p := range g.Pins {
		c := Off
		if p.State {
			c = On
		}
		cv.circle(p.Pos, pinRadius, Border)
		cv.circle(p.Pos, pinRadius-1, Text)
		cv.circle(p.Pos, pinRadius-2, c)
	}
}

// Scene returns an image of size w x h showing s.
//
func Scene(s logicsim.Scene, w, h int) *image.RGBA {
	cv := newCanvas(w, h)
	draw.Draw(cv.img, cv.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	cv.sidebar(&s)
	for _, wr := range s.Wires {
		c := Off
		switch {
		case wr.Hovered:
			c = Hover
		case wr.State:
			c = On
		}
		cv.polyline(wr.Waypoints, wireWidth, c)
		if n := len(wr.Waypoints); n > 0 {
			cv.circle(wr.Waypoints[0], dotRadius, c)
			cv.circle(wr.Waypoints[n-1], dotRadius, c)
		}
	}
	if hl := s.Highlight; hl != nil {
		cv.circle(hl.Pin.Pos, s.PinRadius+3, validity[hl.Validity])
	}
	for i := range s.Gates {
		cv.gate(&s.Gates[i], s.PinRadius)
	}
	if p := s.Preview; p != nil {
		cv.line(p.From, p.To, wireWidth, Preview)
		cv.circle(p.From, dotRadius, Preview)
	}
	return cv.img
}

// WritePNG encodes img as PNG to w.
//
func WritePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(png.Encode(w, img), "encode png")
}
