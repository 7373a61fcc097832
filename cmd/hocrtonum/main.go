// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// hocrtonum prints the number found in a hOCR file, trimmed in the
// same way as epsocr does. It is useful for checking what epsocr
// makes of OCR output saved with tesseract's hocr config.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"rescribe.xyz/epsocr/internal/pipeline"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hocrtonum [-c] [-r] hocrfile\n")
		fmt.Fprintf(os.Stderr, "Prints the number found in a hocr file.\n")
		flag.PrintDefaults()
	}
	conf := flag.Bool("c", false, "Also print the average word confidence.")
	raw := flag.Bool("r", false, "Print the raw text rather than the trimmed number.")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	rec, err := pipeline.ReadHocr(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	text, found := pipeline.TrimToLastDigit(rec.Raw)
	if *raw {
		text = rec.Raw
	}
	fmt.Printf("%s\n", text)

	if *conf {
		if rec.Conf == pipeline.NoConf {
			fmt.Printf("Confidence: none\n")
		} else {
			fmt.Printf("Confidence: %.2f\n", rec.Conf)
		}
	}

	if !found {
		os.Exit(1)
	}
}
