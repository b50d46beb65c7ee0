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

// Package drawables provides example drawables for the scanline
// compositor: bitmaps, integer-zoomed bitmaps, flat-coloured regions and
// filled vector shapes.
//
// All drawables in this package render into the [scanline.RGBA8] pixel
// format, with colour values premultiplied by alpha (the convention of
// [image.RGBA]).  They implement both the [scanline.Sprite] and the
// [scanline.Effect] role and are read-only during rendering, so that
// different lines can be rendered concurrently.
package drawables

import (
	"errors"
	"fmt"
	"image"
	"math"

	"seehuhn.de/go/scanline"
)

// ErrBadDimensions is returned when pixel data does not match the
// requested image size.
var ErrBadDimensions = errors.New("drawables: bad dimensions")

// Bitmap is a rectangular image with its top-left corner at the origin.
type Bitmap struct {
	width  int
	height int
	data   []byte // RGBA8, premultiplied, rows without padding
}

// NewBitmap returns a Bitmap of the given width.  The height is derived
// from the length of data, which must hold a whole number of rows.  The
// data is used directly and must not be modified while the bitmap is in
// use.
func NewBitmap(width int, data []byte) (*Bitmap, error) {
	if width <= 0 || width > math.MaxInt/pixelBytes {
		return nil, fmt.Errorf("%w: width %d", ErrBadDimensions, width)
	}
	rowBytes := width * pixelBytes
	if len(data)%rowBytes != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %d-byte rows",
			ErrBadDimensions, len(data), rowBytes)
	}
	return &Bitmap{
		width:  width,
		height: len(data) / rowBytes,
		data:   data,
	}, nil
}

// BitmapFromImage returns a Bitmap showing the pixels of img.  The
// bitmap's origin corresponds to img.Rect.Min.  If the rows of img are
// contiguous, the pixel data is shared, otherwise it is copied.
func BitmapFromImage(img *image.RGBA) (*Bitmap, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 {
		return nil, fmt.Errorf("%w: image width %d", ErrBadDimensions, w)
	}
	rowBytes := w * pixelBytes
	start := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y)
	if img.Stride == rowBytes {
		return NewBitmap(w, img.Pix[start:start+h*rowBytes])
	}
	data := make([]byte, 0, h*rowBytes)
	for y := range h {
		off := start + y*img.Stride
		data = append(data, img.Pix[off:off+rowBytes]...)
	}
	return NewBitmap(w, data)
}

// Width returns the width of the bitmap in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the height of the bitmap in pixels.
func (b *Bitmap) Height() int { return b.height }

// Lines implements the [scanline.Extent] interface.
func (b *Bitmap) Lines(_ *scanline.Interval) scanline.Interval {
	return scanline.Interval{Start: 0, End: b.height}
}

// LineSegment implements the [scanline.Extent] interface.
func (b *Bitmap) LineSegment(_ *scanline.Interval, _ int, _ scanline.Interval) scanline.Interval {
	return scanline.Interval{Start: 0, End: b.width}
}

// RenderSprite implements the [scanline.Sprite] interface.
func (b *Bitmap) RenderSprite(_ *scanline.Interval, line int, _, segment scanline.Interval, offsetBits int, buf []byte) {
	checkTarget(b, segment, offsetBits, buf)
	blendRow(buf, b.pixels(line, segment), blendSprite)
}

// RenderEffect implements the [scanline.Effect] interface.
func (b *Bitmap) RenderEffect(_ *scanline.Interval, line int, _, segment scanline.Interval, offsetBits int, buf []byte) {
	checkTarget(b, segment, offsetBits, buf)
	blendRow(buf, b.pixels(line, segment), blendEffect)
}

// pixels returns the source pixels for the given part of a line.
func (b *Bitmap) pixels(line int, segment scanline.Interval) []byte {
	if line < 0 || line >= b.height || segment.Start < 0 || segment.End > b.width {
		panic(fmt.Sprintf("drawables: segment %v of line %d outside %dx%d bitmap",
			segment, line, b.width, b.height))
	}
	off := (line*b.width + segment.Start) * pixelBytes
	return b.data[off : off+segment.Len()*pixelBytes]
}

// blendRow blends the pixels of src into dst, which have the same length.
func blendRow(dst, src []byte, blend func(dst, src []byte)) {
	for i := 0; i+pixelBytes <= len(dst); i += pixelBytes {
		blend(dst[i:i+pixelBytes], src[i:i+pixelBytes])
	}
}
