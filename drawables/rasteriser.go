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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/scanline"
)

// FillRule selects which points are inside a path.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// edge represents a line segment in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
	yMin   float64 // min(y0, y1)
	yMax   float64 // max(y0, y1)
}

// Numerical parameters of the edge collector.
const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	// 0.25 is below the threshold of visual perception.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10
)

// edgeList converts paths into device-space edges.
type edgeList struct {
	ctm      matrix.Matrix
	flatness float64

	edges []edge
	first bool // true if no edges added yet

	// bounding box in device space
	xMin, xMax float64
	yMin, yMax float64
}

// collect walks the path, flattens curves and appends the edges.  The
// edges are sorted by their top y coordinate on return.
func (l *edgeList) collect(p *path.Data) {
	l.first = true

	var current vec.Vec2 // current point (user space)
	var subpath vec.Vec2 // subpath start (user space)
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != subpath {
				l.add(current, subpath) // implicit close
			}
			current = p.Coords[coordIdx]
			subpath = current
			coordIdx++

		case path.CmdLineTo:
			l.add(current, p.Coords[coordIdx])
			current = p.Coords[coordIdx]
			coordIdx++

		case path.CmdQuadTo:
			l.flattenQuadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1])
			current = p.Coords[coordIdx+1]
			coordIdx += 2

		case path.CmdCubeTo:
			l.flattenCubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2])
			current = p.Coords[coordIdx+2]
			coordIdx += 3

		case path.CmdClose:
			if current != subpath {
				l.add(current, subpath)
			}
			current = subpath
		}
	}
	if current != subpath {
		l.add(current, subpath)
	}

	slices.SortFunc(l.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin, b.yMin)
	})
}

// add adds an edge given in user space.
func (l *edgeList) add(p0, p1 vec.Vec2) {
	m := l.ctm
	dx0 := m[0]*p0.X + m[2]*p0.Y + m[4]
	dy0 := m[1]*p0.X + m[3]*p0.Y + m[5]
	dx1 := m[0]*p1.X + m[2]*p1.Y + m[4]
	dy1 := m[1]*p1.X + m[3]*p1.Y + m[5]

	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	l.edges = append(l.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
		yMin: min(dy0, dy1),
		yMax: max(dy0, dy1),
	})

	if l.first {
		l.xMin, l.xMax = min(dx0, dx1), max(dx0, dx1)
		l.yMin, l.yMax = min(dy0, dy1), max(dy0, dy1)
		l.first = false
	} else {
		l.xMin = min(l.xMin, dx0, dx1)
		l.xMax = max(l.xMax, dx0, dx1)
		l.yMin = min(l.yMin, dy0, dy1)
		l.yMax = max(l.yMax, dy0, dy1)
	}
}

// transformLinear applies the 2×2 linear part of the CTM to a vector.
func (l *edgeList) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: l.ctm[0]*v.X + l.ctm[2]*v.Y,
		Y: l.ctm[1]*v.X + l.ctm[3]*v.Y,
	}
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
func (l *edgeList) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	n := 1
	if errDev := l.transformLinear(e).Length(); errDev > l.flatness {
		n = int(math.Ceil(math.Sqrt(errDev / l.flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		l.add(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the number of segments.
func (l *edgeList) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := l.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := l.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))
	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * l.flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt * omt).
			Add(p1.Mul(3 * omt * omt * t)).
			Add(p2.Mul(3 * omt * t * t)).
			Add(p3.Mul(t * t * t))
		l.add(prev, pt)
		prev = pt
	}
}

// bounds returns the device-space bounding box and the covered lines and
// columns.
func (l *edgeList) bounds() (rect.Rect, scanline.Interval, scanline.Interval) {
	if len(l.edges) == 0 {
		return rect.Rect{}, scanline.Interval{}, scanline.Interval{}
	}
	box := rect.Rect{LLx: l.xMin, LLy: l.yMin, URx: l.xMax, URy: l.yMax}
	lines := scanline.Interval{Start: floorInt(l.yMin), End: floorInt(l.yMax)}
	cols := scanline.Interval{Start: floorInt(l.xMin), End: floorInt(l.xMax)}
	if lines.End < math.MaxInt {
		lines.End++
	}
	if cols.End < math.MaxInt {
		cols.End++
	}
	return box, lines, cols
}

// Coverage accumulation model:
//
// For each pixel, we track two values:
//   cover: signed vertical extent of edges crossing this pixel column
//   area:  horizontal position weighting (how far right the crossing is)
//
// Final coverage is computed by integrating along the line:
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]
//
// Edges to the left of the requested columns contribute to the first
// pixel, so any part of a line can be rasterised on its own.

// accumulateEdge adds the contribution of e on line y to cover and area,
// which are indexed by x - xMin for columns x in [xMin, xMax).
func accumulateEdge(e *edge, y int, cover, area []float32, xMin, xMax int) {
	yTop := max(float64(y), e.yMin)
	yBot := min(float64(y+1), e.yMax)
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := floorInt(xLeft)
	pixRight := floorInt(xRight)

	switch {
	case pixRight < xMin:
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	case pixLeft >= xMax:
		return
	case pixLeft == pixRight:
		accumulateInColumn(e, yTop, yBot, sign, pixLeft, cover, area, xMin, xMax)
		return
	}

	// The edge crosses several pixel columns: split it at the column
	// boundaries.
	dydx := 1 / e.dxdy

	// The part of the edge left of xMin is added to the first column in
	// one step.
	if pixLeft < xMin {
		yAt := e.y0 + dydx*(float64(xMin)-e.x0)
		leftYMin, leftYMax := yTop, min(yAt, yBot)
		if e.dxdy < 0 {
			leftYMin, leftYMax = max(yAt, yTop), yBot
		}
		if leftYMax > leftYMin {
			coverVal := sign * float32(leftYMax-leftYMin)
			cover[0] += coverVal
			area[0] += coverVal
		}
		pixLeft = xMin
	}

	for pix := pixLeft; pix <= pixRight && pix < xMax; pix++ {
		yAtLeft := e.y0 + dydx*(float64(pix)-e.x0)
		yAtRight := e.y0 + dydx*(float64(pix+1)-e.x0)
		segYMin := max(min(yAtLeft, yAtRight), yTop)
		segYMax := min(max(yAtLeft, yAtRight), yBot)
		if segYMax <= segYMin {
			continue
		}
		coverVal := sign * float32(segYMax-segYMin)
		yMid := (segYMin + segYMax) / 2
		xFrac := e.x0 + e.dxdy*(yMid-e.y0) - float64(pix)
		idx := pix - xMin
		cover[idx] += coverVal
		area[idx] += coverVal * float32(1-xFrac)
	}
}

// accumulateInColumn handles an edge segment inside a single pixel column.
func accumulateInColumn(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, xMin, xMax int) {
	coverVal := sign * float32(yBot-yTop)
	if pix < xMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= xMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xFrac := e.x0 + e.dxdy*(yMid-e.y0) - float64(pix)
	idx := pix - xMin
	cover[idx] += coverVal
	area[idx] += coverVal * float32(1-xFrac)
}

// integrateNonZero converts accumulated cover/area to coverage using the
// nonzero winding rule.  The result is stored in cover.
func integrateNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		cover[i] = min(abs32(raw), 1)
	}
}

// integrateEvenOdd converts accumulated cover/area to coverage using the
// even-odd rule.  The result is stored in cover.
func integrateEvenOdd(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := abs32(accum + area[i])
		accum += cover[i]
		mod := raw - 2*float32(int(raw/2))
		cover[i] = 1 - abs32(1-mod)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
