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
	"math"

	"seehuhn.de/go/scanline"
)

// pixelBytes is the size of one pixel in the RGBA8 layout used by all
// drawables in this package.  Colour values are premultiplied by alpha.
const pixelBytes = 4

// alphaIdx is the index of the alpha channel within a pixel.
const alphaIdx = 3

// blendSprite blends the pixel src behind the pixel dst:
//
//	dst = dst + src * (1 - dst.alpha)
//
// Channel arithmetic is done in uint16 and saturates at 255.
func blendSprite(dst, src []byte) {
	transmit := uint16(math.MaxUint8 - dst[alphaIdx])
	for i := range pixelBytes {
		dst[i] = addSat(dst[i], narrow(uint16(src[i])*transmit/math.MaxUint8))
	}
}

// blendEffect blends the pixel src over the pixel dst:
//
//	dst = src + dst * (1 - src.alpha)
//
// Channel arithmetic is done in uint16 and saturates at 255.
func blendEffect(dst, src []byte) {
	transmit := uint16(math.MaxUint8 - src[alphaIdx])
	for i := range pixelBytes {
		dst[i] = addSat(src[i], narrow(uint16(dst[i])*transmit/math.MaxUint8))
	}
}

// narrow converts a scaled channel value back to 8 bits.  The value
// a*b/255 with a, b <= 255 always fits.
func narrow(x uint16) uint8 {
	if x > math.MaxUint8 {
		panic(fmt.Sprintf("drawables: scaled channel value %d out of range", x))
	}
	return uint8(x)
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(s)
}

// checkTarget verifies the part of the render contract which is common to
// all drawables in this package: whole-byte pixels and a buffer which
// holds exactly the pixels of segment.
func checkTarget(d any, segment scanline.Interval, offsetBits int, buf []byte) {
	if offsetBits != 0 {
		panic(fmt.Sprintf("drawables: %T: bit offset %d in an RGBA8 buffer", d, offsetBits))
	}
	if segment.Start > segment.End || len(buf) != segment.Len()*pixelBytes {
		panic(fmt.Sprintf("drawables: %T: buffer of %d bytes for segment %v",
			d, len(buf), segment))
	}
}
