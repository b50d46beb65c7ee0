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
	"fmt"
	"math"
)

// Interval is the half-open range [Start, End) of pixel coordinates.
// It is used both for ranges of line indices and for ranges of pixel
// columns within a line. An interval with Start >= End is empty.
type Interval struct {
	Start int // first coordinate inside the interval
	End   int // first coordinate after the interval
}

// Span returns the interval [start, end).
func Span(start, end int) Interval {
	return Interval{Start: start, End: end}
}

// Len returns the number of coordinates in the interval.
// Empty intervals have length zero.  The length of an interval wider
// than math.MaxInt is not representable and the result is undefined.
func (a Interval) Len() int {
	if a.End <= a.Start {
		return 0
	}
	return a.End - a.Start
}

// IsEmpty reports whether the interval contains no coordinates.
func (a Interval) IsEmpty() bool {
	return a.End <= a.Start
}

// Contains reports whether x lies inside the interval.
func (a Interval) Contains(x int) bool {
	return a.Start <= x && x < a.End
}

// Translate returns the interval shifted by k.
// The caller must make sure that the result is representable;
// the compositor uses an overflow-checked variant internally.
func (a Interval) Translate(k int) Interval {
	return Interval{Start: a.Start + k, End: a.End + k}
}

// Intersect returns the overlap of a and b. The second return value is
// false if the intervals do not overlap. Intervals which only touch, like
// [0, 5) and [5, 10), do not overlap.
//
// Only comparisons are used, so the result is correct for intervals
// anywhere in the range of int.
func (a Interval) Intersect(b Interval) (Interval, bool) {
	start := max(a.Start, b.Start)
	end := min(a.End, b.End)
	if start >= end {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

func (a Interval) String() string {
	return fmt.Sprintf("[%d, %d)", a.Start, a.End)
}

// addChecked returns a+b, or false if the sum overflows.
func addChecked(a, b int) (int, bool) {
	if b > 0 && a > math.MaxInt-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt-b {
		return 0, false
	}
	return a + b, true
}

// lenChecked returns the length of a, or false if it exceeds math.MaxInt.
func lenChecked(a Interval) (int, bool) {
	if a.End <= a.Start {
		return 0, true
	}
	if a.Start < 0 && a.End > math.MaxInt+a.Start {
		return 0, false
	}
	return a.End - a.Start, true
}

// mulChecked returns a*b, or false if the product overflows.
func mulChecked(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	return p, true
}

// translateChecked shifts the interval by k and reports whether both
// bounds stayed representable.
func translateChecked(a Interval, k int) (Interval, bool) {
	start, ok1 := addChecked(a.Start, k)
	end, ok2 := addChecked(a.End, k)
	if !ok1 || !ok2 {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// negateChecked returns -x, or false for math.MinInt.
func negateChecked(x int) (int, bool) {
	if x == math.MinInt {
		return 0, false
	}
	return -x, true
}
