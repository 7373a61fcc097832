// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package epsocr

import (
	"bytes"
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

func TestLocalCheckBucket(t *testing.T) {
	var slog StrLog
	conn := &LocalConn{Logger: log.New(&slog, "", 0)}
	err := conn.Init()
	if err != nil {
		t.Fatalf("Could not initialise local connection: %v", err)
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "afile")
	err = os.WriteFile(file, []byte("x"), 0600)
	if err != nil {
		t.Fatalf("Could not create file %s: %v", file, err)
	}

	cases := []struct {
		name   string
		bucket string
		haserr bool
	}{
		{"dir", dir, false},
		{"file", file, true},
		{"notpresent", filepath.Join(dir, "notpresent"), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := conn.CheckBucket(c.bucket)
			if c.haserr && err == nil {
				t.Errorf("Expected an error checking %s, got none", c.bucket)
			}
			if !c.haserr && err != nil {
				t.Errorf("Unexpected error checking %s: %v", c.bucket, err)
			}
			if !strings.Contains(slog.log, "Checking directory "+c.bucket) {
				t.Errorf("Check of %s not logged, log: %s", c.bucket, slog.log)
			}
		})
	}
}

func TestLocalUpload(t *testing.T) {
	var slog StrLog
	conn := &LocalConn{Logger: log.New(&slog, "", 0)}
	err := conn.Init()
	if err != nil {
		t.Fatalf("Could not initialise local connection: %v", err)
	}

	cases := []struct {
		key      string
		contents []byte
	}{
		{"empty", []byte{}},
		{"justastring", []byte("I am just a basic string")},
		{"number.txt", []byte("42 17")},
	}

	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			src := t.TempDir()
			dest := t.TempDir()
			fn := filepath.Join(src, "t")
			err := os.WriteFile(fn, c.contents, 0600)
			if err != nil {
				t.Fatalf("Could not create temporary file %s: %v\nLog: %s", fn, err, slog.log)
			}

			err = conn.Upload(dest, c.key, fn)
			if err != nil {
				t.Fatalf("Could not upload file %s: %v\nLog: %s", fn, err, slog.log)
			}

			up, err := os.ReadFile(filepath.Join(dest, c.key))
			if err != nil {
				t.Fatalf("Could not read uploaded file: %v\nLog: %s", err, slog.log)
			}
			if !bytes.Equal(up, c.contents) {
				t.Errorf("Uploaded file differs from expected, expected: '%s', got '%s'\nLog: %s", c.contents, up, slog.log)
			}
			if !strings.Contains(slog.log, "Copying "+fn+" to "+filepath.Join(dest, c.key)) {
				t.Errorf("Upload of %s not logged, log: %s", fn, slog.log)
			}
		})
	}

	t.Run("notpresent", func(t *testing.T) {
		err := conn.Upload(t.TempDir(), "x", filepath.Join(t.TempDir(), "notpresent"))
		if err == nil {
			t.Errorf("Expected an error uploading a missing file")
		}
	})
}
