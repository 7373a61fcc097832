// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// epsocr finds the numbers in EPS images by converting them to PNGs,
// cleaning them up, and running OCR over them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"rescribe.xyz/epsocr"
	"rescribe.xyz/epsocr/internal/pipeline"
)

const usage = `Usage: epsocr [-v] [-m] [-engine name] [-pdf file] [-debug dir] [-i file.eps] [-o file.txt]
       epsocr [-v] [-m] [-p] [-engine name] [-pdf file] [-debug dir] -idir dir -odir dir

Finds the number in an EPS image. The image is converted to a PNG
with ghostscript, cleaned up, and OCRed with tesseract, and the
recognised text is cut off after the last digit.

With -idir every .eps file in a directory is processed, and the
number found in each is saved to a .txt file of the same name in
the -odir directory. Otherwise a single file is processed, and the
number found is saved to -o if it is set. Either way the numbers
are printed unless -m is used.

Output directories and files can be on S3, written as
s3://bucket/prefix.

Intermediate files are kept in a hidden directory inside the
current directory, which is removed when the program finishes.

The following environment variables are used, and can also be set
in a .env file in the current directory:

EPSOCR_GS          ghostscript command (default gs)
EPSOCR_TESSERACT   tesseract command (default tesseract)
EPSOCR_LANG        tesseract training to use (default eng)
EPSOCR_AWS_REGION  AWS region to use for S3 (default eu-west-2)

`

const defaultInput = "file.eps"

var errFailed = errors.New("Not all files could be processed")

type options struct {
	input, inputDir   string
	output, outputDir string
	mute              bool
	engine            string
	pdf               string
	debug             string
	progress          bool
}

// getenv returns the value of the environment variable key, or def
// if it is not set
func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func main() {
	var o options
	flag.StringVar(&o.input, "input", defaultInput, "eps file to process")
	flag.StringVar(&o.input, "i", defaultInput, "eps file to process (shorthand)")
	flag.StringVar(&o.inputDir, "input-dir", "", "directory of eps files to process")
	flag.StringVar(&o.inputDir, "idir", "", "directory of eps files to process (shorthand)")
	flag.StringVar(&o.output, "output", "", "file to save the number found to")
	flag.StringVar(&o.output, "o", "", "file to save the number found to (shorthand)")
	flag.StringVar(&o.outputDir, "output-dir", "", "directory to save the numbers found to")
	flag.StringVar(&o.outputDir, "odir", "", "directory to save the numbers found to (shorthand)")
	flag.BoolVar(&o.mute, "mute", false, "don't print the numbers found")
	flag.BoolVar(&o.mute, "m", false, "don't print the numbers found (shorthand)")
	flag.StringVar(&o.engine, "engine", "tesseract", "OCR engine to use: "+strings.Join(pipeline.Engines(), ", "))
	flag.StringVar(&o.pdf, "pdf", "", "save a PDF showing each image and the number found in it")
	flag.StringVar(&o.debug, "debug", "", "save images of each preprocessing stage to a directory")
	flag.BoolVar(&o.progress, "p", false, "show a progress bar when processing a directory")
	verbose := flag.Bool("v", false, "verbose")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	// a missing .env file is fine, everything has a default
	_ = godotenv.Load()

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", 0)
	} else {
		var n pipeline.NullWriter
		verboselog = log.New(n, "", 0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, o, verboselog)
	stop()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// run processes the file or directory given in o. The working
// directory is removed whatever happens.
func run(ctx context.Context, o options, logger *log.Logger) error {
	if o.inputDir == "" && o.input == "" {
		flag.Usage()
		return errors.New("No input file or directory given")
	}

	ocr, err := pipeline.NewRecognizer(o.engine, pipeline.EngineConfig{
		TessCmd: getenv("EPSOCR_TESSERACT", "tesseract"),
		Lang:    getenv("EPSOCR_LANG", "eng"),
	})
	if err != nil {
		return err
	}

	work, err := pipeline.NewWorkDir(".")
	if err != nil {
		return err
	}
	defer func() {
		err := work.Close()
		if err != nil {
			log.Println(err)
		}
	}()
	logger.Println("Using working directory", work.Path)

	p := &pipeline.Pipeline{
		Conv:     pipeline.Ghostscript{Cmd: getenv("EPSOCR_GS", "gs")},
		Ocr:      ocr,
		Work:     work,
		Logger:   logger,
		DebugDir: o.debug,
	}
	if !o.mute {
		p.Echo = os.Stdout
	}
	if o.debug != "" {
		err = pipeline.CheckDir(o.debug)
		if err != nil {
			return err
		}
	}

	var pdf *epsocr.Fpdf
	if o.pdf != "" {
		pdf = new(epsocr.Fpdf)
		err = pdf.Setup()
		if err != nil {
			return fmt.Errorf("Error setting up PDF: %v", err)
		}
		p.Pdf = pdf
	}

	if o.inputDir != "" {
		err = runDir(ctx, p, o, logger)
	} else {
		err = runFile(ctx, p, o, logger)
	}

	if pdf != nil && (err == nil || errors.Is(err, errFailed)) {
		logger.Println("Saving PDF", o.pdf)
		perr := pdf.Save(o.pdf)
		if perr != nil {
			log.Printf("Error saving PDF %s: %v\n", o.pdf, perr)
		}
	}

	return err
}

// connect sets up a connection to the location, checking that it
// can be saved to
func connect(l epsocr.Location, logger *log.Logger) (epsocr.Conn, error) {
	conn := l.Conn(getenv("EPSOCR_AWS_REGION", ""), logger)
	err := conn.Init()
	if err != nil {
		return nil, fmt.Errorf("Error setting up connection for %s: %v", l, err)
	}
	err = conn.CheckBucket(l.Bucket)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func runFile(ctx context.Context, p *pipeline.Pipeline, o options, logger *log.Logger) error {
	var dest *pipeline.Dest
	if o.output != "" {
		l, err := epsocr.ParseFile(o.output)
		if err != nil {
			return err
		}
		conn, err := connect(l, logger)
		if err != nil {
			return err
		}
		dest = &pipeline.Dest{Conn: conn, Bucket: l.Bucket, Key: l.Key}
	}

	_, err := p.ProcessFile(ctx, o.input, dest)
	return err
}

func runDir(ctx context.Context, p *pipeline.Pipeline, o options, logger *log.Logger) error {
	err := pipeline.CheckDir(o.inputDir)
	if err != nil {
		return err
	}
	if o.outputDir == "" {
		return errors.New("No output directory given, set one with -odir")
	}
	l, err := epsocr.ParseDir(o.outputDir)
	if err != nil {
		return err
	}
	conn, err := connect(l, logger)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if o.progress {
		paths, err := pipeline.FindEPS(o.inputDir)
		if err != nil {
			return err
		}
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Processing"),
			progressbar.OptionShowCount())
		p.Progress = bar
	}

	results, err := p.ProcessDir(ctx, o.inputDir, pipeline.Dest{Conn: conn, Bucket: l.Bucket, Key: l.Key})
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			log.Printf("Error processing %s: %v\n", r.Source, r.Err)
		}
	}
	if n := pipeline.Failed(results); n > 0 {
		return fmt.Errorf("%w: %d of %d failed", errFailed, n, len(results))
	}
	logger.Printf("Processed %d files\n", len(results))
	return nil
}
