// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// integralimg provides summed-area tables ("integral images"), which
// allow the sum or mean of any rectangular area of an image to be
// found in constant time.
package integralimg

import (
	"image"
)

// I is an Integral Image. It is padded with a leading row and column
// of zeros, so I[y][x] is the sum of every value above and to the
// left of (x, y), exclusive.
type I [][]uint64

// Window is a part of an Integral Image
type Window struct {
	topleft     uint64
	topright    uint64
	bottomleft  uint64
	bottomright uint64
	width       int
	height      int
}

// New creates an integral image of width w and height h, using f to
// get the value at each point. Coordinates passed to f start at 0.
func New(w, h int, f func(x, y int) uint64) I {
	integral := make(I, h+1)
	integral[0] = make([]uint64, w+1)
	for y := 0; y < h; y++ {
		row := make([]uint64, w+1)
		var rowsum uint64
		for x := 0; x < w; x++ {
			rowsum += f(x, y)
			row[x+1] = integral[y][x+1] + rowsum
		}
		integral[y+1] = row
	}
	return integral
}

// ToIntegralImg creates an integral image of a gray image. The
// result is addressed relative to the image bounds, so (0, 0) is
// always the top left pixel.
func ToIntegralImg(img *image.Gray) I {
	b := img.Bounds()
	return New(b.Dx(), b.Dy(), func(x, y int) uint64 {
		return uint64(img.Pix[y*img.Stride+x])
	})
}

// Width returns the width of the area the Integral Image covers
func (i I) Width() int {
	if len(i) == 0 {
		return 0
	}
	return len(i[0]) - 1
}

// Height returns the height of the area the Integral Image covers
func (i I) Height() int {
	if len(i) == 0 {
		return 0
	}
	return len(i) - 1
}

// GetWindow gets the values of the corners of a square part of an
// Integral Image centred on (x, y), plus the dimensions of the part,
// which can be used to quickly calculate the sum or mean of the
// area. Windows which would go past the edge of the image are
// clipped to it.
func (i I) GetWindow(x, y, size int) Window {
	step := size / 2

	minx, miny := x-step, y-step
	maxx, maxy := x+step+1, y+step+1
	if minx < 0 {
		minx = 0
	}
	if miny < 0 {
		miny = 0
	}
	if maxx > i.Width() {
		maxx = i.Width()
	}
	if maxy > i.Height() {
		maxy = i.Height()
	}

	return Window{i[miny][minx], i[miny][maxx], i[maxy][minx], i[maxy][maxx], maxx - minx, maxy - miny}
}

// Sum returns the sum of all values in a Window
func (w Window) Sum() uint64 {
	return w.bottomright + w.topleft - w.topright - w.bottomleft
}

// Size returns the number of points in a Window
func (w Window) Size() int {
	return w.width * w.height
}

// Mean returns the average value of a Window
func (w Window) Mean() float64 {
	if w.Size() == 0 {
		return 0
	}
	return float64(w.Sum()) / float64(w.Size())
}

// MeanWindow calculates the mean value of a section of an Integral
// Image
func (i I) MeanWindow(x, y, size int) float64 {
	return i.GetWindow(x, y, size).Mean()
}
