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

package drawables

import (
	"fmt"
	"image/color"
	"sync"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/scanline"
)

// Shape is a vector path filled with a flat colour.  The path is
// anti-aliased, using the exact area of every pixel covered by the path.
// Only the lines requested by the compositor are rasterised.
type Shape struct {
	edges []edge // device space, sorted by yMin
	rule  FillRule
	color [pixelBytes]byte

	box   rect.Rect
	lines scanline.Interval
	cols  scanline.Interval

	scratch sync.Pool // *coverageBuf
}

// coverageBuf holds the per-line accumulation buffers of a Shape.
type coverageBuf struct {
	cover []float32
	area  []float32
}

// NewShape returns a Shape which fills p with colour c.  The path is
// mapped into the drawable's pixel coordinates (y pointing downwards) by
// ctm; the zero matrix is treated as the identity.  Open subpaths are
// closed implicitly.
func NewShape(p *path.Data, ctm matrix.Matrix, rule FillRule, c color.RGBA) *Shape {
	if ctm == (matrix.Matrix{}) {
		ctm = matrix.Identity
	}
	l := &edgeList{ctm: ctm, flatness: defaultFlatness}
	l.collect(p)
	box, lines, cols := l.bounds()

	s := &Shape{
		edges: l.edges,
		rule:  rule,
		color: [pixelBytes]byte{c.R, c.G, c.B, c.A},
		box:   box,
		lines: lines,
		cols:  cols,
	}
	s.scratch.New = func() any { return &coverageBuf{} }
	scanline.Logger().Debug("shape created",
		"edges", len(s.edges), "lines", lines.String(), "columns", cols.String())
	return s
}

// Bounds returns the bounding box of the path in device coordinates.
func (s *Shape) Bounds() rect.Rect { return s.box }

// Lines implements the [scanline.Extent] interface.
func (s *Shape) Lines(_ *scanline.Interval) scanline.Interval { return s.lines }

// LineSegment implements the [scanline.Extent] interface.
func (s *Shape) LineSegment(_ *scanline.Interval, _ int, _ scanline.Interval) scanline.Interval {
	return s.cols
}

// RenderSprite implements the [scanline.Sprite] interface.
func (s *Shape) RenderSprite(_ *scanline.Interval, line int, _, segment scanline.Interval, offsetBits int, buf []byte) {
	checkTarget(s, segment, offsetBits, buf)
	s.render(line, segment, buf, blendSprite)
}

// RenderEffect implements the [scanline.Effect] interface.
func (s *Shape) RenderEffect(_ *scanline.Interval, line int, _, segment scanline.Interval, offsetBits int, buf []byte) {
	checkTarget(s, segment, offsetBits, buf)
	s.render(line, segment, buf, blendEffect)
}

func (s *Shape) render(line int, segment scanline.Interval, buf []byte, blend func(dst, src []byte)) {
	cb := s.scratch.Get().(*coverageBuf)
	defer s.scratch.Put(cb)

	coverage := s.coverage(line, segment, cb)
	var px [pixelBytes]byte
	for i, c := range coverage {
		a := uint16(c*255 + 0.5)
		for j := range pixelBytes {
			px[j] = narrow(uint16(s.color[j]) * a / 255)
		}
		blend(buf[i*pixelBytes:(i+1)*pixelBytes], px[:])
	}
}

// Coverage returns the fraction of each pixel in segment of the given
// line which lies inside the path, as values between 0 and 1.
func (s *Shape) Coverage(line int, segment scanline.Interval) []float32 {
	return s.coverage(line, segment, &coverageBuf{})
}

// coverage is like Coverage, but reuses the storage in buf.  The result
// is valid until buf is used again.
func (s *Shape) coverage(line int, segment scanline.Interval, buf *coverageBuf) []float32 {
	if segment.Start > segment.End {
		panic(fmt.Sprintf("drawables: malformed segment %v", segment))
	}
	n := segment.Len()
	buf.cover = grow(buf.cover, n)
	buf.area = grow(buf.area, n)
	if n == 0 {
		return buf.cover
	}

	yf := float64(line)
	for i := range s.edges {
		e := &s.edges[i]
		if e.yMin >= yf+1 {
			break
		}
		if e.yMax <= yf {
			continue
		}
		accumulateEdge(e, line, buf.cover, buf.area, segment.Start, segment.End)
	}

	if s.rule == EvenOdd {
		integrateEvenOdd(buf.cover, buf.area)
	} else {
		integrateNonZero(buf.cover, buf.area)
	}
	return buf.cover
}

// grow returns a zeroed slice of length n, reusing the storage of b.
func grow(b []float32, n int) []float32 {
	if cap(b) < n {
		return make([]float32, n)
	}
	b = b[:n]
	clear(b)
	return b
}
