// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// preproc cleans up rendered images of printed numbers so they
// can be OCRed reliably. The steps are fixed: denoising, global
// binarisation, and a light blur to smooth the binarised edges.
package preproc

import (
	"image"
)

const (
	denoiseH        = 13
	denoiseTemplate = 13
	denoiseSearch   = 7
	blurSize        = 5
)

// Stages holds the image produced by each preprocessing step, along
// with the threshold level chosen for binarisation.
type Stages struct {
	Gray     *image.Gray
	Denoised *image.Gray
	Binary   *image.Gray
	Blurred  *image.Gray
	Level    uint8
}

// Run puts a grayscale image through every preprocessing step
func Run(gray *image.Gray) Stages {
	var s Stages
	s.Gray = gray
	s.Denoised = Denoise(gray, denoiseH, denoiseTemplate, denoiseSearch)
	s.Level = Otsu(s.Denoised)
	s.Binary = Threshold(s.Denoised, s.Level)
	s.Blurred = BoxBlur(s.Binary, blurSize)
	return s
}

// Process returns the final preprocessed version of an image
func Process(gray *image.Gray) *image.Gray {
	return Run(gray).Blurred
}

// ProcessFile loads an image and preprocesses it
func ProcessFile(path string) (Stages, error) {
	gray, err := LoadGray(path)
	if err != nil {
		return Stages{}, err
	}
	return Run(gray), nil
}
