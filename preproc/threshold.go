// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

import (
	"image"
	"image/color"
)

// Histogram counts the number of pixels of each gray level
func Histogram(img *image.Gray) [256]int {
	var hist [256]int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
		}
	}
	return hist
}

// Otsu finds a global threshold level using Otsu's method, see paper
// "A threshold selection method from gray-level histograms" (1979).
// The level chosen is the one which maximises the variance between
// the pixels at or below it and the pixels above it.
func Otsu(img *image.Gray) uint8 {
	hist := Histogram(img)

	var total, sum float64
	for i, n := range hist {
		total += float64(n)
		sum += float64(i * n)
	}

	var level int
	var best, sumb, wb float64
	for t, n := range hist {
		wb += float64(n)
		if wb == 0 {
			continue
		}
		wf := total - wb
		if wf == 0 {
			break
		}
		sumb += float64(t * n)
		mb := sumb / wb
		mf := (sum - sumb) / wf
		between := wb * wf * (mb - mf) * (mb - mf)
		if between > best {
			best = between
			level = t
		}
	}

	return uint8(level)
}

// Threshold binarises an image, setting every pixel brighter than
// level to white and every other pixel to black
func Threshold(img *image.Gray, level uint8) *image.Gray {
	b := img.Bounds()
	new := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GrayAt(x, y).Y > level {
				new.SetGray(x, y, color.Gray{255})
			} else {
				new.SetGray(x, y, color.Gray{0})
			}
		}
	}

	return new
}
