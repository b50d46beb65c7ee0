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

// PixelFormat describes the layout of one pixel in the output buffer.
//
// The catalog below is sparse.  Any type with a positive stride can be
// used; strides which are not a multiple of 8 are only supported by
// [Compositor.RenderSegment].
type PixelFormat interface {
	// PixelStrideBits returns the number of bits used for each pixel,
	// including padding.
	PixelStrideBits() int
}

// RGBA is a packed red, green, blue, alpha layout without padding.
type RGBA struct {
	BitDepth int // bits per channel
}

// PixelStrideBits implements the [PixelFormat] interface.
func (f RGBA) PixelStrideBits() int { return 4 * f.BitDepth }

// RGB is a packed red, green, blue layout without padding.
type RGB struct {
	BitDepth int // bits per channel
}

// PixelStrideBits implements the [PixelFormat] interface.
func (f RGB) PixelStrideBits() int { return 3 * f.BitDepth }

// Gray is a single-channel layout.  Bit depths below 8 pack several
// pixels into one byte, most significant bits first.
type Gray struct {
	BitDepth int // bits per pixel
}

// PixelStrideBits implements the [PixelFormat] interface.
func (f Gray) PixelStrideBits() int { return f.BitDepth }

// Commonly used pixel formats.
var (
	RGBA8  PixelFormat = RGBA{BitDepth: 8}
	RGBA16 PixelFormat = RGBA{BitDepth: 16}
	RGB8   PixelFormat = RGB{BitDepth: 8}
	Gray1  PixelFormat = Gray{BitDepth: 1}
	Gray2  PixelFormat = Gray{BitDepth: 2}
	Gray4  PixelFormat = Gray{BitDepth: 4}
	Gray8  PixelFormat = Gray{BitDepth: 8}
)
