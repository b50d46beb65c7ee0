// seehuhn.de/go/scanline - a line-oriented pixel compositor
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package testcases defines shapes and scenes which are shared by the
// tests, the benchmarks and the commands of this module.
package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline"
	"seehuhn.de/go/scanline/drawables"
)

// ShapeCase defines a single filled path.
type ShapeCase struct {
	Name   string             // lowercase a-z and _ only
	Path   *path.Data         // the geometry to fill
	Width  int                // canvas width in pixels
	Height int                // canvas height in pixels
	Rule   drawables.FillRule // nonzero or even-odd
	CTM    matrix.Matrix      // transformation matrix (zero-value means no transform)
}

// Scene is a collection of placed drawables, rendered into an RGBA8
// canvas of the given size.
type Scene struct {
	Name    string // lowercase a-z and _ only
	Width   int
	Height  int
	Sprites []scanline.Placed[scanline.Sprite]  // back to front
	Effects []scanline.Placed[scanline.Effect] // in application order
}

// Compositor returns a compositor for the scene's canvas, with line and
// column hints set to the canvas size.
func (s *Scene) Compositor() *scanline.Compositor {
	c := scanline.NewCompositor(scanline.RGBA8)
	c.AllLines = &scanline.Interval{Start: 0, End: s.Height}
	c.LineSpan = &scanline.Interval{Start: 0, End: s.Width}
	return c
}

// RenderLine renders line y of the scene into buf, which must hold at
// least 4*Width bytes and should be zeroed.
func (s *Scene) RenderLine(c *scanline.Compositor, y int, buf []byte) error {
	return c.RenderSegment(y, scanline.Interval{Start: 0, End: s.Width}, buf, s.Sprites, s.Effects)
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
