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
	"iter"
	"math"
	"slices"

	"seehuhn.de/go/scanline"
)

// ZoomedBitmap shows a bitmap enlarged by integer factors.  Every source
// pixel covers zoomX columns and zoomY lines of the output.
type ZoomedBitmap struct {
	src   *Bitmap
	zoomX int
	zoomY int
}

// NewZoomedBitmap returns a zoomed bitmap of the given width.  The data
// must hold a whole number of rows, as for [NewBitmap].
func NewZoomedBitmap(width int, data []byte, zoomX, zoomY int) (*ZoomedBitmap, error) {
	b, err := NewBitmap(width, data)
	if err != nil {
		return nil, err
	}
	return Zoom(b, zoomX, zoomY)
}

// Zoom returns a view of b enlarged by zoomX horizontally and by zoomY
// vertically.  Both factors must be positive.
func Zoom(b *Bitmap, zoomX, zoomY int) (*ZoomedBitmap, error) {
	if zoomX < 1 || zoomY < 1 {
		return nil, fmt.Errorf("%w: zoom factors %d, %d", ErrBadDimensions, zoomX, zoomY)
	}
	if b.width > math.MaxInt/zoomX || b.height > math.MaxInt/zoomY {
		return nil, fmt.Errorf("%w: %dx%d bitmap zoomed by %d, %d",
			ErrBadDimensions, b.width, b.height, zoomX, zoomY)
	}
	return &ZoomedBitmap{src: b, zoomX: zoomX, zoomY: zoomY}, nil
}

// Lines implements the [scanline.Extent] interface.
func (z *ZoomedBitmap) Lines(_ *scanline.Interval) scanline.Interval {
	return scanline.Interval{Start: 0, End: z.src.height * z.zoomY}
}

// LineSegment implements the [scanline.Extent] interface.
func (z *ZoomedBitmap) LineSegment(_ *scanline.Interval, _ int, _ scanline.Interval) scanline.Interval {
	return scanline.Interval{Start: 0, End: z.src.width * z.zoomX}
}

// RenderSprite implements the [scanline.Sprite] interface.
func (z *ZoomedBitmap) RenderSprite(_ *scanline.Interval, line int, _, segment scanline.Interval, offsetBits int, buf []byte) {
	checkTarget(z, segment, offsetBits, buf)
	z.render(line, segment, buf, blendSprite)
}

// RenderEffect implements the [scanline.Effect] interface.
func (z *ZoomedBitmap) RenderEffect(_ *scanline.Interval, line int, _, segment scanline.Interval, offsetBits int, buf []byte) {
	checkTarget(z, segment, offsetBits, buf)
	z.render(line, segment, buf, blendEffect)
}

func (z *ZoomedBitmap) render(line int, segment scanline.Interval, buf []byte, blend func(dst, src []byte)) {
	i := 0
	for px := range z.pixels(line, segment) {
		blend(buf[i:i+pixelBytes], px)
		i += pixelBytes
	}
	if i != len(buf) {
		panic(fmt.Sprintf("drawables: zoomed bitmap produced %d of %d bytes", i, len(buf)))
	}
}

// pixels returns the zoomed source pixels for part of a line.  The
// enlarged image is never materialised: rows and pixels are repeated on
// the fly.
func (z *ZoomedBitmap) pixels(line int, segment scanline.Interval) iter.Seq[[]byte] {
	lines := z.Lines(nil)
	cols := z.LineSegment(nil, line, segment)
	if !lines.Contains(line) || segment.Start < cols.Start || segment.End > cols.End {
		panic(fmt.Sprintf("drawables: segment %v of line %d outside zoomed bitmap", segment, line))
	}

	rows := repeatEach(slices.Chunk(z.src.data, z.src.width*pixelBytes), z.zoomY)
	row, _ := nth(rows, line)
	zoomed := repeatEach(slices.Chunk(row, pixelBytes), z.zoomX)
	return skipTake(zoomed, segment.Start, segment.Len())
}
