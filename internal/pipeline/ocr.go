// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"rescribe.xyz/utils/pkg/hocr"
)

// The OCR engine settings are fixed: the default engine mode, and
// treating the image as a single uniform block of text.
const (
	ocrEngineMode  = "3"
	ocrPageSegMode = "6"
	defaultLang    = "eng"
)

// NoConf is the confidence reported when the engine didn't
// give one, for example when no words were found
const NoConf = -1

// Recognition is the raw output of an OCR engine for an image
type Recognition struct {
	Raw  string
	Conf float64 // mean word confidence from 0 to 100, or NoConf
}

// Recognizer recognises the text in an image file
type Recognizer interface {
	Recognize(ctx context.Context, imgpath string) (Recognition, error)
}

// EngineConfig holds the settings used to construct a Recognizer
type EngineConfig struct {
	TessCmd string
	Lang    string
}

// engines maps names to constructors of the available OCR engines.
// Engines which need extra libraries add themselves when built
// with the appropriate tags.
var engines = map[string]func(EngineConfig) Recognizer{
	"tesseract": func(c EngineConfig) Recognizer {
		return TessCmd{Cmd: c.TessCmd, Lang: c.Lang}
	},
}

// Engines lists the names of the OCR engines available
func Engines() []string {
	var names []string
	for n := range engines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewRecognizer creates the named OCR engine
func NewRecognizer(name string, c EngineConfig) (Recognizer, error) {
	f, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("OCR engine %s is not available, choose from: %s", name, strings.Join(Engines(), ", "))
	}
	return f(c), nil
}

// TessCmd recognises text by running the tesseract command,
// reading the text and confidence from the hOCR it produces
type TessCmd struct {
	Cmd  string // defaults to "tesseract"
	Lang string // defaults to "eng"
}

// Recognize runs tesseract on imgpath, saving the hOCR next to it
func (t TessCmd) Recognize(ctx context.Context, imgpath string) (Recognition, error) {
	tesscmd := t.Cmd
	if tesscmd == "" {
		tesscmd = "tesseract"
	}
	lang := t.Lang
	if lang == "" {
		lang = defaultLang
	}

	name := strings.TrimSuffix(imgpath, filepath.Ext(imgpath))
	cmd := exec.CommandContext(ctx, tesscmd, imgpath, name,
		"-l", lang,
		"--oem", ocrEngineMode,
		"--psm", ocrPageSegMode,
		"-c", "tessedit_create_hocr=1",
		"-c", "hocr_font_info=0")
	HideCmd(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		return Recognition{}, fmt.Errorf("Error ocring %s with training %s: %s\nStdout: %s\nStderr: %s\n", imgpath, lang, err, stdout.String(), stderr.String())
	}

	return ReadHocr(name + ".hocr")
}

// ReadHocr gets the text and average word confidence from an hOCR file
func ReadHocr(path string) (Recognition, error) {
	text, err := hocr.GetText(path)
	if err != nil {
		return Recognition{}, fmt.Errorf("Error reading text from %s: %v", path, err)
	}

	conf, err := hocr.GetAvgConf(path)
	if err != nil && err.Error() == "No words found" {
		return Recognition{Raw: text, Conf: NoConf}, nil
	}
	if err != nil {
		return Recognition{}, fmt.Errorf("Error retreiving confidence for %s: %v", path, err)
	}

	return Recognition{Raw: text, Conf: conf}, nil
}
