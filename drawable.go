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

package scanline

// Extent describes where a drawable has content.  All coordinates are
// relative to the drawable's own origin.
//
// The allLines argument is an optional hint for the range of lines in the
// whole output, already translated into the drawable's coordinates.  It is
// nil if the caller did not supply one.  Drawables may use it to clip
// otherwise unbounded extents, but must not rely on it.
type Extent interface {
	// Lines returns the range of lines on which the drawable has content.
	Lines(allLines *Interval) Interval

	// LineSegment returns the range of pixel columns covered on the given
	// line.  The line is guaranteed to lie inside Lines(allLines).
	// lineSpan is the column range of the complete output line.
	LineSegment(allLines *Interval, line int, lineSpan Interval) Interval
}

// Sprite is a drawable which is composited front to back using
// premultiplied alpha.  Pixels already present in the buffer are in front
// of the sprite:
//
//	dst = dst + src * (1 - dst.alpha)
//
// Sprite lists are given back to front, so the compositor calls
// RenderSprite from the last listed sprite to the first.
type Sprite interface {
	Extent

	// RenderSprite blends the pixel columns segment of the given line
	// into buf.  The segment has been clipped against LineSegment and
	// against the requested output range, and buf holds exactly these
	// pixels.  The first pixel starts offsetBits bits into buf[0];
	// offsetBits is always a multiple of the pixel stride modulo 8.
	//
	// A buf which does not match segment is a bug in the caller, and
	// implementations may panic.
	RenderSprite(allLines *Interval, line int, lineSpan, segment Interval, offsetBits int, buf []byte)
}

// Effect is a drawable which is composited after all sprites, back to
// front.  The alpha channel of an effect controls how much of the
// pixels below shows through:
//
//	dst = src + dst * (1 - src.alpha)
type Effect interface {
	Extent

	// RenderEffect has the same contract as [Sprite.RenderSprite].
	RenderEffect(allLines *Interval, line int, lineSpan, segment Interval, offsetBits int, buf []byte)
}

// Position is the offset of a drawable in the output, in pixels.
type Position struct {
	X int // rightwards offset
	Y int // downwards offset
}

// Placed is a drawable together with its position in the output.
type Placed[T Extent] struct {
	Pos  Position
	Item T
}

// SpriteAt places the sprite s at (x, y).
func SpriteAt(x, y int, s Sprite) Placed[Sprite] {
	return Placed[Sprite]{Pos: Position{X: x, Y: y}, Item: s}
}

// EffectAt places the effect e at (x, y).
func EffectAt(x, y int, e Effect) Placed[Effect] {
	return Placed[Effect]{Pos: Position{X: x, Y: y}, Item: e}
}
