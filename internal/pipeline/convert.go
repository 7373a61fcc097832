// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const defaultResolution = 300

// Converter renders a vector image file into a raster image file
type Converter interface {
	ConvertFile(ctx context.Context, in string, out string) error
}

// Ghostscript converts EPS files to grayscale PNGs using the gs
// command. The bounding box of the EPS is used as the page size.
type Ghostscript struct {
	Cmd        string // defaults to "gs"
	Resolution int    // in dpi, defaults to 300
}

// ConvertFile renders the EPS file in to the PNG file out
func (g Ghostscript) ConvertFile(ctx context.Context, in string, out string) error {
	gscmd := g.Cmd
	if gscmd == "" {
		gscmd = "gs"
	}
	res := g.Resolution
	if res == 0 {
		res = defaultResolution
	}

	cmd := exec.CommandContext(ctx, gscmd,
		"-q", "-dSAFER", "-dBATCH", "-dNOPAUSE", "-dEPSCrop",
		"-sDEVICE=pnggray",
		fmt.Sprintf("-r%d", res),
		"-sOutputFile="+out,
		in)
	HideCmd(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("Error converting %s with %s: %s\nStdout: %s\nStderr: %s\n", in, gscmd, err, stdout.String(), stderr.String())
	}
	return nil
}

// ConvertDir converts every EPS file in indir into a uniquely named
// PNG in outdir. A file which fails to convert is included in the
// results with its Err set, and the rest of the files are still
// converted. Files whose names only differ by extension case, like
// a.eps and a.EPS, would have their results saved to the same place,
// so only the first is converted and the others get an error. An
// error is only returned if indir can't be read or the context is
// cancelled.
func ConvertDir(ctx context.Context, conv Converter, indir string, outdir string, logger *log.Logger) ([]Result, error) {
	paths, err := FindEPS(indir)
	if err != nil {
		return nil, err
	}

	var results []Result
	stems := make(map[string]string)
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		r := Result{Source: path}
		s := strings.ToLower(stem(path))
		if prev, ok := stems[s]; ok {
			r.Err = fmt.Errorf("Error converting %s: result would overwrite the one for %s", path, prev)
			results = append(results, r)
			continue
		}
		stems[s] = path

		r.Raster = filepath.Join(outdir, uuid.NewString()+".png")
		logger.Println("Converting", path, "to", r.Raster)
		r.Err = conv.ConvertFile(ctx, path, r.Raster)
		results = append(results, r)
	}

	return results, nil
}
