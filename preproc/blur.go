// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

import (
	"image"
	"math"
)

// BoxBlur convolves an image with a normalised size x size kernel
// of ones, so each pixel becomes the mean of the square around it.
// Near the edges the image is reflected to fill the square, as
// OpenCV's filter2D does by default.
func BoxBlur(img *image.Gray, size int) *image.Gray {
	b := img.Bounds()
	new := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if b.Empty() {
		return new
	}

	pad := size / 2
	integral := padded(img, pad, func(x, y int) uint64 {
		return uint64(pix(img, x, y))
	})

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			new.Pix[y*new.Stride+x] = clamp(math.Round(integral.MeanWindow(x+pad, y+pad, size)))
		}
	}

	return new
}
