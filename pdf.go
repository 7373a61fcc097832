// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package epsocr

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nickjwhite/gofpdf"
)

// rasterDPI is the resolution EPS files are rendered at, used to
// keep pages at the original size of the image
const rasterDPI = 300

const captionHeight = 24 // in pt

// pxToPt converts a pixel value into a pt value (72 pts per inch)
// This uses rasterDPI to determine the appropriate value
func pxToPt(i int) float64 {
	return float64(i) * 72 / rasterDPI
}

// Fpdf is a proof sheet, with a page for each image processed
// showing the image and the text recognised in it
type Fpdf struct {
	fpdf *gofpdf.Fpdf
}

// Setup creates a new PDF with appropriate settings and fonts
func (p *Fpdf) Setup() error {
	p.fpdf = gofpdf.New("P", "pt", "A4", "")
	p.fpdf.SetFont("Helvetica", "", 12)
	p.fpdf.SetAutoPageBreak(false, float64(0))
	return p.fpdf.Error()
}

// AddPage adds a page to the pdf with an image and a caption
// underneath it
func (p *Fpdf) AddPage(imgpath, caption string) error {
	f, err := os.Open(imgpath)
	if err != nil {
		return fmt.Errorf("Could not open file %s: %v", imgpath, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("Could not decode image %s: %v", imgpath, err)
	}

	w, h := pxToPt(cfg.Width), pxToPt(cfg.Height)
	pagew := w
	if pagew < 144 {
		pagew = 144
	}
	p.fpdf.AddPageFormat("P", gofpdf.SizeType{Wd: pagew, Ht: h + captionHeight})

	_ = p.fpdf.RegisterImageOptions(imgpath, gofpdf.ImageOptions{})
	p.fpdf.ImageOptions(imgpath, 0, 0, w, h, false, gofpdf.ImageOptions{}, 0, "")

	p.fpdf.SetXY(0, h)
	p.fpdf.CellFormat(pagew, captionHeight, caption, "", 0, "CM", false, 0, "")

	return p.fpdf.Error()
}

// Save saves the PDF to the file at path
func (p *Fpdf) Save(path string) error {
	return p.fpdf.OutputFileAndClose(path)
}
