// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

/*
The epsocr package contains tools and functions to recognise the short
number printed at the start of EPS images, such as labels and tags which
carry a two part identifier like "42 17".

Introduction

Central to epsocr is the epsocr command. Presuming you have the go tools
installed, you can install it with this command:
  go install rescribe.xyz/epsocr/cmd/epsocr@latest

It needs two external programs to be installed: ghostscript, to turn the
EPS files into images, and tesseract, to do the OCR. All of the tools
provided will give information on what they do and how they work with the
'-h' flag.

Recognising a single file

  epsocr -i label.eps -o label.txt

This prints the recognised number and saves it to label.txt. Use -m to
stop it from being printed.

Recognising a directory

  epsocr -idir labels/ -odir results/

Every .eps file in labels/ is recognised, with the result saved to a file
of the same name with a .txt extension in results/. The output directory
can also be an S3 bucket and prefix, like s3://mybucket/results, in which
case ~/.aws/credentials need to be set up appropriately. If a file can't be
converted or recognised the error is logged and the rest of the files are
still processed, but epsocr will exit with a failure status at the end.

How it works

Each EPS file is rendered to a grayscale PNG with ghostscript, inside a
hidden working directory (.number_recognitionNNNN) which is created in the
current directory and removed once the run is finished. The PNG is then
cleaned up by the preproc package: it is denoised with non-local means,
binarised with a threshold chosen by Otsu's method, and smoothed with a
5x5 mean filter. The result is OCRed by tesseract, treating the image as
a single uniform block of text, and everything after the last digit in
the text is thrown away.

Configuration

The external programs and AWS region can be set with these environment
variables, which can also be put in a .env file in the current directory:
  EPSOCR_GS          ghostscript command (default gs)
  EPSOCR_TESSERACT   tesseract command (default tesseract)
  EPSOCR_LANG        tesseract training to use (default eng)
  EPSOCR_AWS_REGION  AWS region for s3:// outputs

Debugging

The -debug flag saves an image of each preprocessing step, plus a graph
of the gray level histogram marking the binarisation level, into a
directory. The -pdf flag saves a PDF with a page for each image showing
what was given to the OCR engine and what was recognised.

The preproc tool runs the preprocessing on its own:
  preproc rendered.png cleaned.png

If tesseract has been run by hand with the hocr config, the hocrtonum
tool shows what epsocr would make of its output:
  hocrtonum -c label.hocr

OCR engine

By default tesseract is run as a separate program. Building with the
gosseract tag adds an engine which uses the tesseract library directly,
which can be selected with '-engine gosseract':
  go install -tags gosseract rescribe.xyz/epsocr/cmd/epsocr@latest
*/
package epsocr
