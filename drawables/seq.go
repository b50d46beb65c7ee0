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

import "iter"

// repeatEach returns a sequence in which every element of seq is
// repeated n times.  The result is lazy and can be iterated more than
// once if seq can.
func repeatEach[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range seq {
			for range n {
				if !yield(item) {
					return
				}
			}
		}
	}
}

// skipTake returns the elements of seq with index in [skip, skip+take).
func skipTake[T any](seq iter.Seq[T], skip, take int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if take <= 0 {
			return
		}
		i := 0
		for item := range seq {
			if i >= skip {
				if !yield(item) || i+1 >= skip+take {
					return
				}
			}
			i++
		}
	}
}

// nth returns the element of seq at index n.
func nth[T any](seq iter.Seq[T], n int) (T, bool) {
	for item := range skipTake(seq, n, 1) {
		return item, true
	}
	var zero T
	return zero, false
}
