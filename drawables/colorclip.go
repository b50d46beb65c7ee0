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
	"image/color"
	"math"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/scanline"
)

// LinesFunc computes the line range of a [ColorClip].
type LinesFunc func(allLines *scanline.Interval) scanline.Interval

// SegmentFunc computes the column range of a [ColorClip] on one line.
type SegmentFunc func(allLines *scanline.Interval, line int, lineSpan scanline.Interval) scanline.Interval

// ColorClip is a region of flat colour.  The shape of the region is given
// by two functions, which receive the same hints as the
// [scanline.Extent] methods.
type ColorClip struct {
	lines    LinesFunc
	segments SegmentFunc
	color    [pixelBytes]byte
}

// NewColorClip returns a region of colour c with the given shape.
// The colour is premultiplied, as for all [color.RGBA] values.
func NewColorClip(lines LinesFunc, segments SegmentFunc, c color.RGBA) *ColorClip {
	return &ColorClip{
		lines:    lines,
		segments: segments,
		color:    [pixelBytes]byte{c.R, c.G, c.B, c.A},
	}
}

// NewRectClip returns a region of colour c covering every pixel which
// overlaps r.  The rectangle is given in pixel coordinates with y
// increasing downwards, so LLy is the top edge.
func NewRectClip(r rect.Rect, c color.RGBA) *ColorClip {
	lines := scanline.Interval{Start: floorInt(r.LLy), End: ceilInt(r.URy)}
	cols := scanline.Interval{Start: floorInt(r.LLx), End: ceilInt(r.URx)}
	if lines.IsEmpty() || cols.IsEmpty() {
		lines, cols = scanline.Interval{}, scanline.Interval{}
	}
	return NewColorClip(
		func(*scanline.Interval) scanline.Interval { return lines },
		func(*scanline.Interval, int, scanline.Interval) scanline.Interval { return cols },
		c)
}

// NewFill returns a region of colour c which covers the whole output, as
// far as it is known from the hints.  Without a line hint the region is
// empty.
func NewFill(c color.RGBA) *ColorClip {
	return NewColorClip(
		func(allLines *scanline.Interval) scanline.Interval {
			if allLines == nil {
				return scanline.Interval{}
			}
			return *allLines
		},
		func(_ *scanline.Interval, _ int, lineSpan scanline.Interval) scanline.Interval {
			return lineSpan
		},
		c)
}

// Lines implements the [scanline.Extent] interface.
func (cc *ColorClip) Lines(allLines *scanline.Interval) scanline.Interval {
	return cc.lines(allLines)
}

// LineSegment implements the [scanline.Extent] interface.
func (cc *ColorClip) LineSegment(allLines *scanline.Interval, line int, lineSpan scanline.Interval) scanline.Interval {
	return cc.segments(allLines, line, lineSpan)
}

// RenderSprite implements the [scanline.Sprite] interface.
func (cc *ColorClip) RenderSprite(_ *scanline.Interval, _ int, _, segment scanline.Interval, offsetBits int, buf []byte) {
	checkTarget(cc, segment, offsetBits, buf)
	for i := 0; i < len(buf); i += pixelBytes {
		blendSprite(buf[i:i+pixelBytes], cc.color[:])
	}
}

// RenderEffect implements the [scanline.Effect] interface.
func (cc *ColorClip) RenderEffect(_ *scanline.Interval, _ int, _, segment scanline.Interval, offsetBits int, buf []byte) {
	checkTarget(cc, segment, offsetBits, buf)
	for i := 0; i < len(buf); i += pixelBytes {
		blendEffect(buf[i:i+pixelBytes], cc.color[:])
	}
}

// floorInt rounds x down and clamps the result to the range of int.
func floorInt(x float64) int {
	return clampInt(math.Floor(x))
}

// ceilInt rounds x up and clamps the result to the range of int.
func ceilInt(x float64) int {
	return clampInt(math.Ceil(x))
}

func clampInt(x float64) int {
	switch {
	case math.IsNaN(x):
		return 0
	case x <= math.MinInt:
		return math.MinInt
	case x >= math.MaxInt:
		return math.MaxInt
	}
	return int(x)
}
