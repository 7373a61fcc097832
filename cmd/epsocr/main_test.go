// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// StrLog is a simple logger that saves to a string,
// so it can be printed out only when needed.
type StrLog struct {
	log string
}

func (t *StrLog) Write(p []byte) (n int, err error) {
	t.log += string(p)
	return len(p), nil
}

// chdir changes to dir for the rest of the test, as run creates its
// working directory in the current directory
func chdir(t *testing.T, dir string) {
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Could not get current directory: %v", err)
	}
	err = os.Chdir(dir)
	if err != nil {
		t.Fatalf("Could not change to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}

// leftovers lists any working directories left in dir
func leftovers(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Could not read %s: %v", dir, err)
	}
	var found []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".number_recognition") {
			found = append(found, e.Name())
		}
	}
	return found
}

func TestRunErrors(t *testing.T) {
	cwd := t.TempDir()
	chdir(t, cwd)

	indir := filepath.Join(cwd, "in")
	err := os.Mkdir(indir, 0755)
	if err != nil {
		t.Fatalf("Could not create %s: %v", indir, err)
	}
	for _, n := range []string{"a.eps", "label.png"} {
		err = os.WriteFile(filepath.Join(indir, n), []byte("%!PS-Adobe-3.0 EPSF-3.0\n"), 0644)
		if err != nil {
			t.Fatalf("Could not create %s: %v", n, err)
		}
	}

	cases := []struct {
		name   string
		o      options
		output string
	}{
		{"missingoutputdir", options{inputDir: indir, outputDir: filepath.Join(cwd, "notpresent")}, filepath.Join(cwd, "notpresent")},
		{"nooutputdir", options{inputDir: indir}, ""},
		{"missinginputdir", options{inputDir: filepath.Join(cwd, "notpresent"), outputDir: cwd}, ""},
		{"noteps", options{input: filepath.Join(indir, "label.png"), output: filepath.Join(cwd, "label.txt")}, filepath.Join(cwd, "label.txt")},
		{"missinginput", options{input: filepath.Join(cwd, "file.eps"), output: filepath.Join(cwd, "file.txt")}, filepath.Join(cwd, "file.txt")},
		{"noinput", options{}, ""},
		{"missingdebugdir", options{input: filepath.Join(indir, "a.eps"), debug: filepath.Join(cwd, "notpresent")}, ""},
		{"badengine", options{input: filepath.Join(indir, "a.eps"), engine: "notanengine"}, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var slog StrLog
			o := c.o
			o.mute = true
			if o.engine == "" {
				o.engine = "tesseract"
			}

			err := run(context.Background(), o, log.New(&slog, "", 0))
			if err == nil {
				t.Fatalf("Expected an error\nLog: %s", slog.log)
			}
			if c.output != "" {
				if _, err := os.Stat(c.output); !os.IsNotExist(err) {
					t.Errorf("Expected no output at %s", c.output)
				}
			}
			if found := leftovers(t, cwd); len(found) != 0 {
				t.Errorf("Working directories left behind: %v", found)
			}
		})
	}

	entries, err := os.ReadDir(cwd)
	if err != nil {
		t.Fatalf("Could not read %s: %v", cwd, err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the input directory to be left, found %d entries", len(entries))
	}
}

func TestRunTwice(t *testing.T) {
	cwd := t.TempDir()
	chdir(t, cwd)

	o := options{input: filepath.Join(cwd, "label.txt"), engine: "tesseract", mute: true}
	for i := 0; i < 2; i++ {
		var slog StrLog
		err := run(context.Background(), o, log.New(&slog, "", 0))
		if err == nil {
			t.Fatalf("Expected an error processing a file which isn't an eps")
		}
		if found := leftovers(t, cwd); len(found) != 0 {
			t.Fatalf("Working directories left behind after run %d: %v", i+1, found)
		}
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("EPSOCR_TEST_VALUE", "set")
	t.Setenv("EPSOCR_TEST_EMPTY", "")

	cases := []struct {
		key, def, expect string
	}{
		{"EPSOCR_TEST_VALUE", "default", "set"},
		{"EPSOCR_TEST_EMPTY", "default", "default"},
		{"EPSOCR_TEST_NOTSET", "default", "default"},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			if v := getenv(c.key, c.def); v != c.expect {
				t.Errorf("Expected %s, got %s", c.expect, v)
			}
		})
	}
}
