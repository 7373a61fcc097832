// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// pipeline is a package used by the epsocr command, which handles
// the core functionality: converting EPS files to images, cleaning
// them up, OCRing them, and saving the numbers found. Note that it
// is considered an "internal" package, not intended for external
// use, and no guarantee is made of the stability of any interfaces
// provided.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"rescribe.xyz/epsocr"
	"rescribe.xyz/epsocr/preproc"
)

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// Result is the outcome of processing one input file. If anything
// went wrong Err is set, and the other fields may be incomplete.
type Result struct {
	Source string // input EPS file
	Raster string // converted image
	Raw    string // text as recognised by the OCR engine
	Text   string // Raw up to and including the last digit
	Found  bool   // whether any digit was found
	Conf   float64
	Err    error
}

// Uploader saves a file at path to bucket/key
type Uploader interface {
	Upload(bucket string, key string, path string) error
}

// Dest is where results are saved. When processing a directory Key
// is a prefix which result file names are added to; when processing
// a single file it is the full key.
type Dest struct {
	Conn   Uploader
	Bucket string
	Key    string
}

// Pdfer adds a page showing an image and its caption to a PDF
type Pdfer interface {
	AddPage(imgpath, caption string) error
}

// Progresser is told each time a file from a directory is done
type Progresser interface {
	Add(n int) error
}

// Pipeline holds everything needed to process EPS files. Conv, Ocr
// and Work are required; the rest are optional.
type Pipeline struct {
	Conv   Converter
	Ocr    Recognizer
	Work   *WorkDir
	Logger *log.Logger

	// Echo has the recognised text of each file printed to it
	Echo io.Writer
	// Pdf has a page added for each image recognised
	Pdf Pdfer
	// DebugDir has the image from each preprocessing stage and a
	// histogram graph saved to it
	DebugDir string
	Progress Progresser
}

func (p *Pipeline) logger() *log.Logger {
	if p.Logger == nil {
		var n NullWriter
		p.Logger = log.New(n, "", 0)
	}
	return p.Logger
}

// Recognize preprocesses and OCRs r.Raster, filling in the text
// fields of r
func (p *Pipeline) Recognize(ctx context.Context, r Result) (Result, error) {
	name := stem(r.Source)

	p.logger().Println("Preprocessing", r.Raster)
	s, err := preproc.ProcessFile(r.Raster)
	if err != nil {
		return r, fmt.Errorf("Error preprocessing %s: %v", r.Raster, err)
	}
	procpath := filepath.Join(p.Work.Path, stem(r.Raster)+"_proc.png")
	err = preproc.SaveGray(s.Blurred, procpath)
	if err != nil {
		return r, err
	}

	if p.DebugDir != "" {
		err = p.debug(name, s)
		if err != nil {
			p.logger().Println("Error saving debug images for", r.Source, err)
		}
	}

	select {
	case <-ctx.Done():
		return r, ctx.Err()
	default:
	}

	p.logger().Println("OCRing", procpath)
	rec, err := p.Ocr.Recognize(ctx, procpath)
	if err != nil {
		return r, err
	}
	r.Raw = rec.Raw
	r.Conf = rec.Conf
	r.Text, r.Found = TrimToLastDigit(rec.Raw)
	if !r.Found {
		p.logger().Println("No digits found in", r.Source)
	}
	if r.Conf != NoConf {
		p.logger().Printf("Confidence for %s: %.0f\n", r.Source, r.Conf)
	}

	if p.Pdf != nil {
		caption := r.Text
		if !r.Found {
			caption = "(no number found)"
		}
		err = p.Pdf.AddPage(procpath, filepath.Base(r.Source)+": "+caption)
		if err != nil {
			return r, fmt.Errorf("Error adding %s to PDF: %v", r.Source, err)
		}
	}

	return r, nil
}

// debug saves the image from each preprocessing stage, plus a graph
// of the histogram the binarisation level was chosen from
func (p *Pipeline) debug(name string, s preproc.Stages) error {
	stages := []struct {
		suffix string
		img    *image.Gray
	}{
		{"1gray", s.Gray},
		{"2denoised", s.Denoised},
		{"3binary", s.Binary},
		{"4blurred", s.Blurred},
	}
	for _, st := range stages {
		err := preproc.SaveGray(st.img, filepath.Join(p.DebugDir, name+"_"+st.suffix+".png"))
		if err != nil {
			return err
		}
	}

	fn := filepath.Join(p.DebugDir, name+"_hist.png")
	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("Error creating file %s: %v", fn, err)
	}
	defer f.Close()
	return epsocr.HistGraph(preproc.Histogram(s.Denoised), s.Level, name, f)
}

// output prints the text of a result, if an Echo writer is set
func (p *Pipeline) output(r Result) {
	if p.Echo != nil {
		fmt.Fprintln(p.Echo, r.Text)
	}
}

// save writes the text of a result to dest under key
func (p *Pipeline) save(r Result, dest Dest, key string) error {
	fn := filepath.Join(p.Work.Path, uuid.NewString()+".txt")
	err := os.WriteFile(fn, []byte(r.Text), 0644)
	if err != nil {
		return fmt.Errorf("Error writing result for %s: %v", r.Source, err)
	}
	defer os.Remove(fn)

	p.logger().Println("Saving result for", r.Source, "to", key)
	err = dest.Conn.Upload(dest.Bucket, key, fn)
	if err != nil {
		return fmt.Errorf("Error saving result for %s to %s: %v", r.Source, key, err)
	}
	return nil
}

// ProcessFile converts, recognises and outputs a single EPS file.
// The text is saved to dest, unless it is nil.
func (p *Pipeline) ProcessFile(ctx context.Context, in string, dest *Dest) (Result, error) {
	r := Result{Source: in}
	err := CheckEPS(in)
	if err != nil {
		r.Err = err
		return r, err
	}

	// the random name stops runs sharing a working directory
	// from overwriting each other's images
	r.Raster = filepath.Join(p.Work.Path, uuid.NewString()+".png")
	p.logger().Println("Converting", in)
	err = p.Conv.ConvertFile(ctx, in, r.Raster)
	if err != nil {
		r.Err = err
		return r, err
	}

	r, err = p.Recognize(ctx, r)
	if err != nil {
		r.Err = err
		return r, err
	}
	p.output(r)

	if dest != nil {
		err = p.save(r, *dest, dest.Key)
		if err != nil {
			r.Err = err
			return r, err
		}
	}

	return r, nil
}

// ProcessDir converts, recognises and outputs every EPS file in
// indir, saving the text of each to dest with the same name as the
// input file, but a .txt extension. Each file is processed on its
// own, so if one fails its Err is set and the rest carry on. An
// error is only returned if indir can't be read, contains no EPS
// files, or the context is cancelled.
func (p *Pipeline) ProcessDir(ctx context.Context, indir string, dest Dest) ([]Result, error) {
	results, err := ConvertDir(ctx, p.Conv, indir, p.Work.Path, p.logger())
	if err != nil {
		return results, err
	}
	if len(results) == 0 {
		return results, fmt.Errorf("No eps files found in %s", indir)
	}

	for i, r := range results {
		if r.Err == nil {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			default:
			}
			results[i] = p.processConverted(ctx, r, dest)
		}
		if p.Progress != nil {
			_ = p.Progress.Add(1)
		}
	}

	return results, nil
}

// processConverted recognises, outputs and saves a converted file
func (p *Pipeline) processConverted(ctx context.Context, r Result, dest Dest) Result {
	r, err := p.Recognize(ctx, r)
	if err != nil {
		r.Err = err
		return r
	}
	p.output(r)
	r.Err = p.save(r, dest, path.Join(dest.Key, stem(r.Source)+".txt"))
	return r
}

// Failed counts the results which have an error
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
