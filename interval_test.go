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
	"math"
	"testing"
)

var intervalSamples = []Interval{
	{0, 0},
	{0, 5},
	{5, 10},
	{3, 8},
	{-10, -3},
	{-4, 4},
	{7, 7},
	{math.MinInt, 0},
	{0, math.MaxInt},
	{math.MinInt, math.MaxInt},
	{math.MaxInt - 1, math.MaxInt},
}

func TestIntersectTouching(t *testing.T) {
	if r, ok := Span(0, 5).Intersect(Span(5, 10)); ok {
		t.Errorf("touching intervals intersect to %v", r)
	}
	if r, ok := Span(5, 10).Intersect(Span(0, 5)); ok {
		t.Errorf("touching intervals intersect to %v", r)
	}
}

func TestIntersectOverlap(t *testing.T) {
	r, ok := Span(0, 5).Intersect(Span(3, 8))
	if !ok || r != Span(3, 5) {
		t.Errorf("got %v, %t, want [3, 5), true", r, ok)
	}
}

func TestIntersectCommutative(t *testing.T) {
	for _, a := range intervalSamples {
		for _, b := range intervalSamples {
			ab, okAB := a.Intersect(b)
			ba, okBA := b.Intersect(a)
			if ab != ba || okAB != okBA {
				t.Errorf("%v∩%v = %v, %t but %v∩%v = %v, %t", a, b, ab, okAB, b, a, ba, okBA)
			}
		}
	}
}

func TestIntersectSelf(t *testing.T) {
	for _, a := range intervalSamples {
		r, ok := a.Intersect(a)
		if a.IsEmpty() {
			if ok {
				t.Errorf("empty %v intersects itself to %v", a, r)
			}
			continue
		}
		if !ok || r != a {
			t.Errorf("%v∩%v = %v, %t", a, a, r, ok)
		}
	}
}

func TestIntersectExtreme(t *testing.T) {
	a := Span(math.MinInt, -5)
	b := Span(-10, math.MaxInt)
	r, ok := a.Intersect(b)
	if !ok || r != Span(-10, -5) {
		t.Errorf("got %v, %t", r, ok)
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	offsets := []int{0, 1, -1, 100, -100, 1 << 40, -(1 << 40)}
	for _, a := range intervalSamples[:7] {
		for _, k := range offsets {
			if got := a.Translate(k).Translate(-k); got != a {
				t.Errorf("%v translated by %d and back gives %v", a, k, got)
			}
		}
	}
}

func TestIntervalBasics(t *testing.T) {
	a := Span(-2, 3)
	if a.Len() != 5 {
		t.Errorf("Len = %d", a.Len())
	}
	for x, want := range map[int]bool{-3: false, -2: true, 0: true, 2: true, 3: false} {
		if a.Contains(x) != want {
			t.Errorf("Contains(%d) = %t", x, !want)
		}
	}
	if Span(4, 2).Len() != 0 || !Span(4, 2).IsEmpty() {
		t.Error("reversed interval is not empty")
	}
	if s := a.String(); s != "[-2, 3)" {
		t.Errorf("String() = %q", s)
	}
}

func TestCheckedArithmetic(t *testing.T) {
	if _, ok := addChecked(math.MaxInt, 1); ok {
		t.Error("MaxInt+1 did not overflow")
	}
	if _, ok := addChecked(math.MinInt, -1); ok {
		t.Error("MinInt-1 did not overflow")
	}
	if s, ok := addChecked(math.MaxInt, math.MinInt); !ok || s != -1 {
		t.Errorf("MaxInt+MinInt = %d, %t", s, ok)
	}
	if _, ok := mulChecked(math.MaxInt/2+1, 2); ok {
		t.Error("product did not overflow")
	}
	if _, ok := mulChecked(math.MinInt, -1); ok {
		t.Error("MinInt*-1 did not overflow")
	}
	if p, ok := mulChecked(-3, 24); !ok || p != -72 {
		t.Errorf("-3*24 = %d, %t", p, ok)
	}
	if _, ok := translateChecked(Span(0, math.MaxInt), 1); ok {
		t.Error("translation did not overflow")
	}
	if _, ok := lenChecked(Span(math.MinInt, 0)); ok {
		t.Error("length of [MinInt, 0) did not overflow")
	}
	if n, ok := lenChecked(Span(math.MinInt+1, 0)); !ok || n != math.MaxInt {
		t.Errorf("length of [MinInt+1, 0) = %d, %t", n, ok)
	}
	if n, ok := lenChecked(Span(5, -5)); !ok || n != 0 {
		t.Errorf("length of empty interval = %d, %t", n, ok)
	}
	if _, ok := negateChecked(math.MinInt); ok {
		t.Error("-MinInt did not overflow")
	}
}
