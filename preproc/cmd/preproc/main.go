// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// preproc runs the epsocr image preprocessing on a single image,
// which is useful for checking what the OCR engine will be given.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"rescribe.xyz/epsocr/preproc"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: preproc [-v] inimg outimg\n")
		fmt.Fprintf(os.Stderr, "Denoise, binarise and smooth an image for OCR\n")
		flag.PrintDefaults()
	}
	verbose := flag.Bool("v", false, "Print the threshold level chosen for binarisation.")
	flag.Parse()
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	log.Print("Preprocessing")
	s, err := preproc.ProcessFile(flag.Arg(0))
	if err != nil {
		log.Fatalln(err)
	}
	if *verbose {
		log.Printf("Binarisation level: %d\n", s.Level)
	}

	err = preproc.SaveGray(s.Blurred, flag.Arg(1))
	if err != nil {
		log.Fatalln(err)
	}
}
