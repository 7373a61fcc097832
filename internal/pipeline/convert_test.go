// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"flag"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"rescribe.xyz/epsocr/preproc"
)

var slow = flag.Bool("slow", false, "include slow tests which need gs and tesseract installed")

// testEPS draws "42" in black on a 120x40pt white box
const testEPS = `%!PS-Adobe-3.0 EPSF-3.0
%%BoundingBox: 0 0 120 40
%%EndComments
1 setgray
0 0 120 40 rectfill
0 setgray
/Helvetica findfont 32 scalefont setfont
18 8 moveto
(42) show
showpage
%%EOF
`

func writeTestEPS(t *testing.T, dir string) string {
	fn := filepath.Join(dir, "label.eps")
	err := os.WriteFile(fn, []byte(testEPS), 0644)
	if err != nil {
		t.Fatalf("Could not write %s: %v", fn, err)
	}
	return fn
}

func needCmd(t *testing.T, name string) {
	if !*slow {
		t.Skip("Skipping slow test; use -slow to run it.\n")
	}
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("Skipping test as %s is not installed\n", name)
	}
}

func TestGhostscript(t *testing.T) {
	needCmd(t, "gs")

	dir := t.TempDir()
	in := writeTestEPS(t, dir)
	out := filepath.Join(dir, "label.png")

	err := Ghostscript{}.ConvertFile(context.Background(), in, out)
	if err != nil {
		t.Fatalf("Error converting %s: %v", in, err)
	}

	img, err := preproc.LoadGray(out)
	if err != nil {
		t.Fatalf("Error loading converted image: %v", err)
	}
	// 120pt at 300dpi
	if w := img.Bounds().Dx(); w < 498 || w > 502 {
		t.Errorf("Expected converted image to be about 500px wide, got %d", w)
	}

	err = Ghostscript{}.ConvertFile(context.Background(), filepath.Join(dir, "notpresent.eps"), out)
	if err == nil {
		t.Errorf("Expected an error converting a missing file")
	}
}

func TestConvertDir(t *testing.T) {
	indir := t.TempDir()
	outdir := t.TempDir()
	touch(t,
		filepath.Join(indir, "a.eps"),
		filepath.Join(indir, "bad.eps"),
		filepath.Join(indir, "c.eps"),
		filepath.Join(indir, "c_proc.eps"))

	var slog StrLog
	conv := fakeConverter{fail: map[string]bool{"bad": true}}
	results, err := ConvertDir(context.Background(), conv, indir, outdir, log.New(&slog, "", 0))
	if err != nil {
		t.Fatalf("Error converting directory: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}

	rasters := make(map[string]bool)
	for _, r := range results {
		_, staterr := os.Stat(r.Raster)
		if stem(r.Source) == "bad" {
			if r.Err == nil {
				t.Errorf("Expected an error converting %s", r.Source)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("Error converting %s: %v", r.Source, r.Err)
		}
		if staterr != nil {
			t.Errorf("Converted image %s missing: %v", r.Raster, staterr)
		}
		if filepath.Dir(r.Raster) != outdir || filepath.Ext(r.Raster) != ".png" {
			t.Errorf("Unexpected converted image path %s for %s", r.Raster, r.Source)
		}
		if rasters[r.Raster] {
			t.Errorf("Converted image path %s used more than once", r.Raster)
		}
		rasters[r.Raster] = true
	}
}
