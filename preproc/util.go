// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
	"rescribe.xyz/epsocr/integralimg"
)

// LoadGray opens an image file of any supported format and converts
// it to grayscale. The returned image always starts at (0, 0).
func LoadGray(path string) (*image.Gray, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Could not open image %s: %v", path, err)
	}
	return ToGray(img), nil
}

// ToGray copies any image into a new grayscale image, starting
// at (0, 0)
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// SaveGray saves an image, with the format chosen by the file
// extension of path
func SaveGray(img *image.Gray, path string) error {
	err := imaging.Save(img, path)
	if err != nil {
		return fmt.Errorf("Could not save image %s: %v", path, err)
	}
	return nil
}

// reflect maps i into 0..n-1 by reflecting it about the edges
// without repeating the edge pixel, so -1 becomes 1 and n becomes
// n-2. This matches OpenCV's BORDER_REFLECT_101.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

// pix returns the value of the pixel at x, y, relative to the
// image bounds, with coordinates outside the image reflected back
// into it
func pix(img *image.Gray, x, y int) uint8 {
	b := img.Bounds()
	return img.Pix[reflect(y, b.Dy())*img.Stride+reflect(x, b.Dx())]
}

// padded creates an integral image of img with a border of pad
// reflected pixels on every side, so windows up to 2*pad+1 wide
// centred inside img are never clipped. Point (x+pad, y+pad) of
// the result corresponds to pixel (x, y) of img.
func padded(img *image.Gray, pad int, f func(x, y int) uint64) integralimg.I {
	b := img.Bounds()
	return integralimg.New(b.Dx()+2*pad, b.Dy()+2*pad, func(x, y int) uint64 {
		return f(x-pad, y-pad)
	})
}

func clamp(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}
