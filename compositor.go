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

// Package scanline composites positioned drawables into one horizontal
// strip of an output image at a time.  It is intended for producers which
// emit pixel data line by line, for example into a streaming image
// encoder, and never needs the whole frame in memory.
//
// Drawables come in two roles.  [Sprite] values are blended first, using
// front-to-back premultiplied accumulation.  [Effect] values are blended
// afterwards as overlays on top of the composited sprites.  Each drawable
// lives in its own coordinate system and is placed into the output by a
// [Position]; the [Compositor] clips every drawable against the requested
// segment and hands it exactly the bytes it may modify.
package scanline

//go:generate go run ./testcases/genpdf
//go:generate go run ./testcases/export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Errors returned by the render methods.  When one of these is returned,
// the buffer has not been modified.
var (
	ErrInvalidFormat     = errors.New("scanline: invalid pixel format")
	ErrInvalidInterval   = errors.New("scanline: malformed interval")
	ErrBufferTooSmall    = errors.New("scanline: buffer too small")
	ErrExtremeCoordinate = errors.New("scanline: coordinate out of range")
)

// Compositor renders lines of output from a collection of sprites and
// effects.  A Compositor holds only configuration: render calls do not
// modify it, and calls for disjoint buffers may run concurrently as long
// as the drawables are not modified during rendering.
type Compositor struct {
	// Format is the pixel format of the output buffer.
	Format PixelFormat

	// AllLines optionally gives the range of lines in the whole output.
	// It is passed to the drawables as a hint, translated into their
	// coordinate systems.
	AllLines *Interval

	// LineSpan optionally gives the range of pixel columns of a complete
	// output line.  If nil, the rendered segment is used.
	LineSpan *Interval
}

// NewCompositor returns a Compositor for the given pixel format, without
// line or column hints.
func NewCompositor(format PixelFormat) *Compositor {
	return &Compositor{Format: format}
}

// RenderLine renders a complete line into buf.  The line consists of as
// many pixels as fit into buf, starting at column 0.  The pixel stride of
// the format must be a whole number of bytes.
//
// Sprites are listed back to front: later sprites occlude earlier ones.
// Effects are applied in list order after all sprites.
func (c *Compositor) RenderLine(line int, buf []byte, sprites []Placed[Sprite], effects []Placed[Effect]) error {
	stride, err := c.stride()
	if err != nil {
		return err
	}
	if stride%8 != 0 {
		return fmt.Errorf("%w: stride of %d bits is not a whole number of bytes",
			ErrInvalidFormat, stride)
	}
	segment := Interval{Start: 0, End: len(buf) / (stride / 8)}
	return c.RenderSegment(line, segment, buf, sprites, effects)
}

// RenderSegment renders the pixel columns segment of the given line into
// buf.  The first pixel of the segment starts at bit
// (segment.Start * stride) mod 8 of buf[0], so that segments of one line
// can be rendered separately into consecutive parts of a line buffer.
//
// Sprites and effects are processed as described for
// [Compositor.RenderLine].  An error is returned, before any drawable is
// rendered, if the arguments are unusable.  A drawable which violates its
// contract, for example by returning a range with Start > End, causes a
// panic.
func (c *Compositor) RenderSegment(line int, segment Interval, buf []byte, sprites []Placed[Sprite], effects []Placed[Effect]) error {
	f, err := c.newFrame(line, segment, buf)
	if err != nil {
		return err
	}

	// Check all translations up front, so that an error never leaves
	// a partially rendered buffer behind.
	for i := range sprites {
		if _, err := f.localize(sprites[i].Pos); err != nil {
			return fmt.Errorf("sprite %d: %w", i, err)
		}
	}
	for i := range effects {
		if _, err := f.localize(effects[i].Pos); err != nil {
			return fmt.Errorf("effect %d: %w", i, err)
		}
	}

	// The sprite blend accumulates front to back, so the frontmost
	// sprite, the last in the list, is rendered first.
	for i := len(sprites) - 1; i >= 0; i-- {
		dispatch(f, "sprite", i, sprites[i], Sprite.RenderSprite)
	}
	for i := range effects {
		dispatch(f, "effect", i, effects[i], Effect.RenderEffect)
	}
	return nil
}

func (c *Compositor) stride() (int, error) {
	if c.Format == nil {
		return 0, fmt.Errorf("%w: no pixel format", ErrInvalidFormat)
	}
	stride := c.Format.PixelStrideBits()
	if stride <= 0 {
		return 0, fmt.Errorf("%w: stride of %d bits", ErrInvalidFormat, stride)
	}
	return stride, nil
}

// frame holds the per-call state of one RenderSegment invocation.
type frame struct {
	stride     int       // bits per pixel
	offsetBits int       // bit offset of the first segment pixel in buf[0]
	line       int       // output line index
	segment    Interval  // requested pixel columns, output coordinates
	lineSpan   Interval  // column hint, output coordinates
	allLines   *Interval // line hint, output coordinates; may be nil
	hint       *Interval // scratch space for the translated line hint
	buf        []byte
}

func (c *Compositor) newFrame(line int, segment Interval, buf []byte) (*frame, error) {
	stride, err := c.stride()
	if err != nil {
		return nil, err
	}
	if segment.Start > segment.End {
		return nil, fmt.Errorf("%w: segment %v", ErrInvalidInterval, segment)
	}
	if c.AllLines != nil && c.AllLines.Start > c.AllLines.End {
		return nil, fmt.Errorf("%w: line hint %v", ErrInvalidInterval, *c.AllLines)
	}
	lineSpan := segment
	if c.LineSpan != nil {
		lineSpan = *c.LineSpan
		if lineSpan.Start > lineSpan.End {
			return nil, fmt.Errorf("%w: line span %v", ErrInvalidInterval, lineSpan)
		}
	}

	startBits, ok := mulChecked(segment.Start, stride)
	if !ok {
		return nil, fmt.Errorf("%w: segment start %d", ErrExtremeCoordinate, segment.Start)
	}
	offsetBits := ((startBits % 8) + 8) % 8

	segmentLen, ok := lenChecked(segment)
	var segmentBits int
	if ok {
		segmentBits, ok = mulChecked(segmentLen, stride)
	}
	if ok {
		segmentBits, ok = addChecked(segmentBits, offsetBits)
	}
	if !ok {
		return nil, fmt.Errorf("%w: segment %v", ErrExtremeCoordinate, segment)
	}
	if need := ceilBytes(segmentBits); need > len(buf) {
		return nil, fmt.Errorf("%w: segment %v needs %d bytes, got %d",
			ErrBufferTooSmall, segment, need, len(buf))
	}

	f := &frame{
		stride:     stride,
		offsetBits: offsetBits,
		line:       line,
		segment:    segment,
		lineSpan:   lineSpan,
		allLines:   c.AllLines,
		buf:        buf,
	}
	if c.AllLines != nil {
		f.hint = new(Interval)
	}
	return f, nil
}

// local describes the frame in the coordinate system of one drawable.
type local struct {
	allLines *Interval
	line     int
	lineSpan Interval
	segment  Interval
}

// localize translates the frame into the coordinates of a drawable placed
// at pos.
func (f *frame) localize(pos Position) (local, error) {
	dx, okX := negateChecked(pos.X)
	dy, okY := negateChecked(pos.Y)
	if !okX || !okY {
		return local{}, fmt.Errorf("%w: position (%d, %d)", ErrExtremeCoordinate, pos.X, pos.Y)
	}

	var l local
	var ok bool
	if l.line, ok = addChecked(f.line, dy); !ok {
		return local{}, fmt.Errorf("%w: line %d at y=%d", ErrExtremeCoordinate, f.line, pos.Y)
	}
	if f.allLines != nil {
		allLines, ok := translateChecked(*f.allLines, dy)
		if !ok {
			return local{}, fmt.Errorf("%w: line hint %v at y=%d", ErrExtremeCoordinate, *f.allLines, pos.Y)
		}
		*f.hint = allLines
		l.allLines = f.hint
	}
	if l.lineSpan, ok = translateChecked(f.lineSpan, dx); !ok {
		return local{}, fmt.Errorf("%w: line span %v at x=%d", ErrExtremeCoordinate, f.lineSpan, pos.X)
	}
	if l.segment, ok = translateChecked(f.segment, dx); !ok {
		return local{}, fmt.Errorf("%w: segment %v at x=%d", ErrExtremeCoordinate, f.segment, pos.X)
	}
	return l, nil
}

// bytes returns the part of the buffer holding the output columns cols,
// together with the bit offset of the first pixel.  cols must lie inside
// the frame's segment.
func (f *frame) bytes(cols Interval) ([]byte, int) {
	bit0 := (cols.Start-f.segment.Start)*f.stride + f.offsetBits
	bit1 := (cols.End-f.segment.Start)*f.stride + f.offsetBits
	return f.buf[bit0/8 : ceilBytes(bit1)], bit0 % 8
}

type renderFunc[T Extent] func(d T, allLines *Interval, line int, lineSpan, segment Interval, offsetBits int, buf []byte)

// dispatch clips one placed drawable against the frame and renders the
// visible part.
func dispatch[T Extent](f *frame, role string, idx int, p Placed[T], render renderFunc[T]) {
	l, err := f.localize(p.Pos)
	if err != nil {
		// RenderSegment has checked all positions before.
		panic(err)
	}

	lines := p.Item.Lines(l.allLines)
	mustBeWellFormed(p.Item, "line range", lines)
	if !lines.Contains(l.line) {
		logSkip(role, idx, f.line, "line not covered")
		return
	}

	cols := p.Item.LineSegment(l.allLines, l.line, l.lineSpan)
	mustBeWellFormed(p.Item, "line segment", cols)
	visible, ok := cols.Intersect(l.segment)
	if !ok {
		logSkip(role, idx, f.line, "no visible columns")
		return
	}

	// visible lies inside l.segment, so translating back cannot overflow.
	buf, offsetBits := f.bytes(visible.Translate(p.Pos.X))
	render(p.Item, l.allLines, l.line, l.lineSpan, visible, offsetBits, buf)
}

func mustBeWellFormed(d any, what string, r Interval) {
	if r.Start > r.End {
		panic(fmt.Sprintf("scanline: %T returned malformed %s %v", d, what, r))
	}
}

func logSkip(role string, idx, line int, reason string) {
	log := Logger()
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	log.Debug("drawable skipped",
		slog.String("role", role),
		slog.Int("index", idx),
		slog.Int("line", line),
		slog.String("reason", reason))
}

// ceilBytes returns the number of bytes needed to hold n bits.
func ceilBytes(n int) int {
	q := n / 8
	if n%8 != 0 {
		q++
	}
	return q
}
