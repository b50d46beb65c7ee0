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

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strings"
	"testing"
)

// call records the arguments of one render call.
type call struct {
	name       string
	allLines   *Interval
	line       int
	lineSpan   Interval
	segment    Interval
	offsetBits int
	bufLen     int
}

// probe is a drawable which records all render calls and fills its
// pixels with a fixed value.
type probe struct {
	name   string
	lines  Interval
	cols   Interval
	stride int  // bits per pixel
	value  byte // pixel value, truncated to the stride for sub-byte formats
	log    *[]call
}

func (p *probe) Lines(*Interval) Interval { return p.lines }

func (p *probe) LineSegment(*Interval, int, Interval) Interval { return p.cols }

func (p *probe) RenderSprite(allLines *Interval, line int, lineSpan, segment Interval, offsetBits int, buf []byte) {
	p.render(allLines, line, lineSpan, segment, offsetBits, buf)
}

func (p *probe) RenderEffect(allLines *Interval, line int, lineSpan, segment Interval, offsetBits int, buf []byte) {
	p.render(allLines, line, lineSpan, segment, offsetBits, buf)
}

func (p *probe) render(allLines *Interval, line int, lineSpan, segment Interval, offsetBits int, buf []byte) {
	c := call{
		name:       p.name,
		line:       line,
		lineSpan:   lineSpan,
		segment:    segment,
		offsetBits: offsetBits,
		bufLen:     len(buf),
	}
	if allLines != nil {
		hint := *allLines
		c.allLines = &hint
	}
	if p.log != nil {
		*p.log = append(*p.log, c)
	}

	if offsetBits%8%gcd(p.stride, 8) != 0 {
		panic("misaligned pixel")
	}
	if want := ceilBytes(offsetBits + segment.Len()*p.stride); len(buf) != want {
		panic("buffer does not match segment")
	}
	for i := range segment.Len() {
		setPixel(buf, offsetBits+i*p.stride, p.stride, p.value)
	}
}

// setPixel stores v at the given bit position.  Pixels narrower than a
// byte are packed most significant bits first; wider pixels repeat v in
// every byte.
func setPixel(buf []byte, bitPos, stride int, v byte) {
	if stride >= 8 {
		for i := range stride / 8 {
			buf[bitPos/8+i] = v
		}
		return
	}
	shift := 8 - bitPos%8 - stride
	mask := byte(1<<stride-1) << shift
	buf[bitPos/8] = buf[bitPos/8]&^mask | (v<<shift)&mask
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func names(log []call) []string {
	var res []string
	for _, c := range log {
		res = append(res, c.name)
	}
	return res
}

func TestRenderSkipsInvisibleSprite(t *testing.T) {
	var log []call
	p := &probe{name: "far", lines: Span(0, 1), cols: Span(0, 5), stride: 8, value: 1, log: &log}
	c := NewCompositor(Gray8)
	buf := make([]byte, 10)

	err := c.RenderSegment(0, Span(0, 10), buf, []Placed[Sprite]{SpriteAt(100, 0, p)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 0 {
		t.Errorf("unexpected render calls: %v", log)
	}
	if !bytes.Equal(buf, make([]byte, 10)) {
		t.Errorf("buffer modified: %v", buf)
	}
}

func TestRenderClipsNegativePosition(t *testing.T) {
	var log []call
	p := &probe{name: "p", lines: Span(0, 3), cols: Span(0, 10), stride: 8, value: 7, log: &log}
	c := NewCompositor(Gray8)
	buf := make([]byte, 8)

	// line 0 of the output is line 2 of the sprite
	err := c.RenderLine(0, buf, []Placed[Sprite]{SpriteAt(-4, -2, p)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 1 {
		t.Fatalf("got %d calls, want 1", len(log))
	}
	got := log[0]
	if got.line != 2 || got.segment != Span(4, 10) || got.lineSpan != Span(4, 12) ||
		got.offsetBits != 0 || got.bufLen != 6 {
		t.Errorf("unexpected call %+v", got)
	}
	want := []byte{7, 7, 7, 7, 7, 7, 0, 0}
	if !bytes.Equal(buf, want) {
		t.Errorf("got %v, want %v", buf, want)
	}
}

func TestRenderVerticalPlacement(t *testing.T) {
	var log []call
	p := &probe{name: "p", lines: Span(0, 3), cols: Span(0, 2), stride: 8, value: 1, log: &log}
	c := NewCompositor(Gray8)
	sprites := []Placed[Sprite]{SpriteAt(0, 5, p)}

	for line := 3; line < 10; line++ {
		if err := c.RenderLine(line, make([]byte, 4), sprites, nil); err != nil {
			t.Fatal(err)
		}
	}
	var lines []int
	for _, c := range log {
		lines = append(lines, c.line)
	}
	if !slices.Equal(lines, []int{0, 1, 2}) {
		t.Errorf("rendered sprite lines %v, want [0 1 2]", lines)
	}
}

func TestRenderOrder(t *testing.T) {
	var log []call
	mk := func(name string) *probe {
		return &probe{name: name, lines: Span(0, 1), cols: Span(0, 4), stride: 8, log: &log}
	}
	sprites := []Placed[Sprite]{SpriteAt(0, 0, mk("s0")), SpriteAt(0, 0, mk("s1")), SpriteAt(0, 0, mk("s2"))}
	effects := []Placed[Effect]{EffectAt(0, 0, mk("e0")), EffectAt(0, 0, mk("e1"))}

	if err := NewCompositor(Gray8).RenderLine(0, make([]byte, 4), sprites, effects); err != nil {
		t.Fatal(err)
	}

	// sprites accumulate front to back, the last listed sprite is in front
	want := []string{"s2", "s1", "s0", "e0", "e1"}
	if got := names(log); !slices.Equal(got, want) {
		t.Errorf("render order %v, want %v", got, want)
	}
}

func TestRenderHints(t *testing.T) {
	var log []call
	p := &probe{name: "p", lines: Span(-100, 100), cols: Span(-100, 100), stride: 8, log: &log}
	c := NewCompositor(Gray8)
	c.AllLines = &Interval{Start: 0, End: 100}
	c.LineSpan = &Interval{Start: 0, End: 50}

	err := c.RenderSegment(20, Span(10, 20), make([]byte, 10),
		[]Placed[Sprite]{SpriteAt(3, 10, p)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 1 {
		t.Fatalf("got %d calls", len(log))
	}
	got := log[0]
	if got.allLines == nil || *got.allLines != Span(-10, 90) {
		t.Errorf("line hint %v, want [-10, 90)", got.allLines)
	}
	if got.line != 10 || got.lineSpan != Span(-3, 47) || got.segment != Span(7, 17) {
		t.Errorf("unexpected call %+v", got)
	}
	if *c.AllLines != Span(0, 100) {
		t.Errorf("compositor hint modified: %v", *c.AllLines)
	}
}

func TestRenderWithoutHints(t *testing.T) {
	var log []call
	p := &probe{name: "p", lines: Span(0, 1), cols: Span(0, 4), stride: 8, log: &log}
	err := NewCompositor(Gray8).RenderLine(0, make([]byte, 4), nil, []Placed[Effect]{EffectAt(0, 0, p)})
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 1 || log[0].allLines != nil {
		t.Errorf("unexpected calls %+v", log)
	}
}

func TestRenderSubBytePixels(t *testing.T) {
	var log []call
	p := &probe{name: "p", lines: Span(0, 1), cols: Span(5, 7), stride: 4, value: 0xA, log: &log}
	c := NewCompositor(Gray4)

	// the segment starts in the middle of a byte
	buf := make([]byte, 5)
	err := c.RenderSegment(0, Span(3, 11), buf, []Placed[Sprite]{SpriteAt(0, 0, p)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 1 {
		t.Fatalf("got %d calls", len(log))
	}
	if log[0].offsetBits != 4 || log[0].bufLen != 2 {
		t.Errorf("unexpected call %+v", log[0])
	}
	want := []byte{0x00, 0x0A, 0xA0, 0x00, 0x00}
	if !bytes.Equal(buf, want) {
		t.Errorf("got % x, want % x", buf, want)
	}
}

func TestRenderSplitSegments(t *testing.T) {
	for _, format := range []PixelFormat{Gray1, Gray2, Gray4, Gray8, RGB8, RGBA16} {
		stride := format.PixelStrideBits()
		mk := func(v byte, lines, cols Interval) *probe {
			return &probe{lines: lines, cols: cols, stride: stride, value: v}
		}
		sprites := []Placed[Sprite]{
			SpriteAt(-3, 0, mk(1, Span(0, 4), Span(0, 9))),
			SpriteAt(7, -1, mk(2, Span(0, 4), Span(0, 5))),
			SpriteAt(13, 0, mk(3, Span(0, 1), Span(0, 40))),
		}
		effects := []Placed[Effect]{
			EffectAt(4, 0, mk(1, Span(0, 1), Span(0, 3))),
		}
		const width = 24
		c := NewCompositor(format)

		whole := make([]byte, ceilBytes(width*stride))
		if err := c.RenderSegment(0, Span(0, width), whole, sprites, effects); err != nil {
			t.Fatal(err)
		}

		for _, cuts := range [][]int{{0, 24}, {0, 5, 11, 24}, {0, 1, 2, 3, 17, 23, 24}} {
			parts := make([]byte, len(whole))
			for i := 1; i < len(cuts); i++ {
				seg := Span(cuts[i-1], cuts[i])
				buf := parts[seg.Start*stride/8:]
				if err := c.RenderSegment(0, seg, buf, sprites, effects); err != nil {
					t.Fatal(err)
				}
			}
			if !bytes.Equal(parts, whole) {
				t.Errorf("%d bits, cuts %v: got % x, want % x", stride, cuts, parts, whole)
			}
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	if err := NewCompositor(RGBA8).RenderLine(0, buf, nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := NewCompositor(RGBA8).RenderSegment(0, Span(5, 5), nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4}) {
		t.Errorf("buffer modified: %v", buf)
	}
}

func TestRenderErrors(t *testing.T) {
	var log []call
	p := &probe{name: "p", lines: Span(-10, 10), cols: Span(-10, 10), stride: 8, value: 9, log: &log}
	ok := SpriteAt(0, 0, p)

	cases := []struct {
		name    string
		format  PixelFormat
		line    int
		segment Interval
		bufLen  int
		sprites []Placed[Sprite]
		effects []Placed[Effect]
		want    error
	}{
		{"no format", nil, 0, Span(0, 4), 4, nil, nil, ErrInvalidFormat},
		{"zero stride", Gray{BitDepth: 0}, 0, Span(0, 4), 4, nil, nil, ErrInvalidFormat},
		{"reversed segment", Gray8, 0, Span(4, 0), 4, nil, nil, ErrInvalidInterval},
		{"short buffer", Gray8, 0, Span(0, 5), 4, nil, nil, ErrBufferTooSmall},
		{"short buffer with offset", Gray4, 0, Span(1, 9), 4, nil, nil, ErrBufferTooSmall},
		{"extreme start", RGBA8, 0, Span(math.MaxInt/8, math.MaxInt/8+1), 4, nil, nil, ErrExtremeCoordinate},
		{"extreme position", Gray8, 0, Span(0, 4), 4,
			[]Placed[Sprite]{ok, SpriteAt(math.MinInt, 0, p)}, nil, ErrExtremeCoordinate},
		{"extreme x offset", Gray8, 0, Span(0, 4), 4,
			[]Placed[Sprite]{ok, SpriteAt(math.MinInt+2, 0, p)}, nil, ErrExtremeCoordinate},
		{"extreme line", Gray8, math.MinInt + 1, Span(0, 4), 4,
			[]Placed[Sprite]{ok, SpriteAt(0, 2, p)}, nil, ErrExtremeCoordinate},
		{"extreme length", Gray1, 0, Span(math.MinInt, 0), 1,
			[]Placed[Sprite]{ok}, nil, ErrExtremeCoordinate},
		{"extreme effect", Gray8, 0, Span(0, 4), 4,
			[]Placed[Sprite]{ok}, []Placed[Effect]{EffectAt(0, math.MinInt, p)}, ErrExtremeCoordinate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log = log[:0]
			buf := bytes.Repeat([]byte{0x55}, tc.bufLen)
			c := &Compositor{Format: tc.format}
			err := c.RenderSegment(tc.line, tc.segment, buf, tc.sprites, tc.effects)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got error %v, want %v", err, tc.want)
			}
			if len(log) != 0 {
				t.Errorf("drawables were rendered: %v", names(log))
			}
			if !bytes.Equal(buf, bytes.Repeat([]byte{0x55}, tc.bufLen)) {
				t.Errorf("buffer modified: % x", buf)
			}
		})
	}
}

func TestRenderLineFormat(t *testing.T) {
	err := NewCompositor(Gray4).RenderLine(0, make([]byte, 4), nil, nil)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("got %v, want %v", err, ErrInvalidFormat)
	}

	// a line of RGB8 pixels ignores trailing bytes
	var log []call
	p := &probe{name: "p", lines: Span(0, 1), cols: Span(-5, 50), stride: 24, value: 1, log: &log}
	buf := make([]byte, 10)
	if err := NewCompositor(RGB8).RenderLine(0, buf, []Placed[Sprite]{SpriteAt(0, 0, p)}, nil); err != nil {
		t.Fatal(err)
	}
	if len(log) != 1 || log[0].segment != Span(0, 3) || log[0].bufLen != 9 {
		t.Errorf("unexpected calls %+v", log)
	}
	if buf[9] != 0 {
		t.Errorf("trailing byte modified")
	}
}

func TestMalformedDrawablePanics(t *testing.T) {
	p := &probe{name: "p", lines: Span(5, 2), cols: Span(0, 4), stride: 8}
	defer func() {
		if recover() == nil {
			t.Error("malformed line range did not panic")
		}
	}()
	_ = NewCompositor(Gray8).RenderLine(0, make([]byte, 4), []Placed[Sprite]{SpriteAt(0, 0, p)}, nil)
}

func TestSkipLogging(t *testing.T) {
	var out bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	p := &probe{name: "p", lines: Span(0, 1), cols: Span(0, 4), stride: 8}
	effects := []Placed[Effect]{EffectAt(0, 3, p)}
	if err := NewCompositor(Gray8).RenderLine(0, make([]byte, 4), nil, effects); err != nil {
		t.Fatal(err)
	}
	if s := out.String(); !strings.Contains(s, "drawable skipped") || !strings.Contains(s, "role=effect") {
		t.Errorf("unexpected log output %q", s)
	}
}
