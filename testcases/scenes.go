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

package testcases

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/scanline"
	"seehuhn.de/go/scanline/drawables"
)

// Colours used by the scenes.  All values are premultiplied.
var (
	Red         = color.RGBA{R: 255, A: 255}
	Green       = color.RGBA{G: 255, A: 255}
	Blue        = color.RGBA{B: 255, A: 255}
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	HalfGreen   = color.RGBA{G: 128, A: 128}
	QuarterGray = color.RGBA{R: 16, G: 16, B: 16, A: 64}
	HalfBlue    = color.RGBA{B: 100, A: 128}
)

// Scenes contains all compositing scenes.
var Scenes = []Scene{
	{
		Name:   "layers",
		Width:  48,
		Height: 32,
		Sprites: []scanline.Placed[scanline.Sprite]{
			scanline.SpriteAt(4, 4, bitmap(20, 20, Red)),
			scanline.SpriteAt(0, 0, drawables.NewRectClip(rect.Rect{LLx: 14, LLy: 10, URx: 34, URy: 26}, Blue)),
			scanline.SpriteAt(24, 8, bitmap(16, 16, HalfGreen)),
		},
		Effects: []scanline.Placed[scanline.Effect]{
			scanline.EffectAt(0, 0, drawables.NewFill(QuarterGray)),
		},
	},
	{
		Name:   "offscreen",
		Width:  32,
		Height: 16,
		Sprites: []scanline.Placed[scanline.Sprite]{
			scanline.SpriteAt(-8, -4, checker(16, 16, 4, Red, Blue)),
			scanline.SpriteAt(24, 10, checker(16, 16, 4, Green, White)),
			scanline.SpriteAt(100, 0, bitmap(5, 5, Red)),
			scanline.SpriteAt(0, -50, bitmap(5, 5, Red)),
			scanline.SpriteAt(-40, 20, bitmap(5, 5, Red)),
		},
	},
	{
		Name:   "zoom",
		Width:  40,
		Height: 24,
		Sprites: []scanline.Placed[scanline.Sprite]{
			scanline.SpriteAt(0, 0, zoomed(checker(4, 3, 1, Red, White), 5, 4)),
			scanline.SpriteAt(30, 10, zoomed(bitmap(1, 1, Blue), 3, 2)),
		},
		Effects: []scanline.Placed[scanline.Effect]{
			scanline.EffectAt(-3, 20, zoomed(bitmap(2, 1, HalfBlue), 4, 2)),
		},
	},
	{
		Name:   "shapes",
		Width:  64,
		Height: 64,
		Sprites: []scanline.Placed[scanline.Sprite]{
			scanline.SpriteAt(0, 0, drawables.NewShape(circle(32, 32, 25), matrix.Matrix{}, drawables.NonZero, White)),
			scanline.SpriteAt(-6, 4, drawables.NewShape(fivePointStar(32, 32, 20), matrix.Matrix{}, drawables.EvenOdd, Red)),
		},
		Effects: []scanline.Placed[scanline.Effect]{
			scanline.EffectAt(0, 0, drawables.NewShape(ring(32, 32, 30, 26), matrix.Matrix{}, drawables.EvenOdd, HalfBlue)),
		},
	},
	{
		Name:   "empty",
		Width:  8,
		Height: 8,
	},
}

// Solid returns the pixel data of a w×h image of colour c.
func Solid(w, h int, c color.RGBA) []byte {
	data := make([]byte, 0, 4*w*h)
	for range w * h {
		data = append(data, c.R, c.G, c.B, c.A)
	}
	return data
}

// Checker returns the pixel data of a w×h checkerboard with square cells
// of the given size.
func Checker(w, h, cell int, c1, c2 color.RGBA) []byte {
	data := make([]byte, 0, 4*w*h)
	for y := range h {
		for x := range w {
			c := c1
			if (x/cell+y/cell)%2 == 1 {
				c = c2
			}
			data = append(data, c.R, c.G, c.B, c.A)
		}
	}
	return data
}

func bitmap(w, h int, c color.RGBA) *drawables.Bitmap {
	return must(drawables.NewBitmap(w, Solid(w, h, c)))
}

func checker(w, h, cell int, c1, c2 color.RGBA) *drawables.Bitmap {
	return must(drawables.NewBitmap(w, Checker(w, h, cell, c1, c2)))
}

func zoomed(b *drawables.Bitmap, zoomX, zoomY int) *drawables.ZoomedBitmap {
	return must(drawables.Zoom(b, zoomX, zoomY))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
