// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

import (
	"image"
	"math"
)

// Denoise implements non-local means denoising, see paper
// "A non-local algorithm for image denoising" (2005).
//
// Each pixel is replaced by a weighted average of the pixels in the
// searchsize window around it, weighted by how similar the
// templatesize patch around each candidate is to the patch around
// the pixel. h controls how quickly the weight falls off with patch
// difference. Patch distances are found with one integral image per
// search offset, so the cost doesn't depend on templatesize. Pixels
// outside the image are reflected back into it, as OpenCV's
// fastNlMeansDenoising does.
func Denoise(img *image.Gray, h float64, templatesize int, searchsize int) *image.Gray {
	b := img.Bounds()
	w, ht := b.Dx(), b.Dy()
	new := image.NewGray(image.Rect(0, 0, w, ht))
	if w == 0 || ht == 0 {
		return new
	}

	sums := make([]float64, w*ht)
	weights := make([]float64, w*ht)
	h2 := h * h
	step := searchsize / 2
	pad := templatesize / 2

	for dy := -step; dy <= step; dy++ {
		for dx := -step; dx <= step; dx++ {
			diffs := padded(img, pad, func(x, y int) uint64 {
				d := int(pix(img, x, y)) - int(pix(img, x+dx, y+dy))
				return uint64(d * d)
			})
			for y := 0; y < ht; y++ {
				for x := 0; x < w; x++ {
					dist := diffs.MeanWindow(x+pad, y+pad, templatesize)
					weight := math.Exp(-dist / h2)
					i := y*w + x
					weights[i] += weight
					sums[i] += weight * float64(pix(img, x+dx, y+dy))
				}
			}
		}
	}

	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			new.Pix[y*new.Stride+x] = clamp(math.Round(sums[i] / weights[i]))
		}
	}

	return new
}
