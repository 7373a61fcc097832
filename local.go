// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package epsocr

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LocalConn saves results to the local filesystem. Buckets are
// directories, and keys are file names within them.
type LocalConn struct {
	// these should be set before running Init(), or left to defaults
	Logger *log.Logger
}

// Init sets up the logger if it wasn't already set
func (a *LocalConn) Init() error {
	if a.Logger == nil {
		a.Logger = log.New(os.Stdout, "", 0)
	}
	return nil
}

// CheckBucket checks that the bucket directory exists
func (a *LocalConn) CheckBucket(bucket string) error {
	a.Logger.Println("Checking directory", bucket)
	info, err := os.Stat(bucket)
	if err != nil {
		return fmt.Errorf("Directory %s does not exist: %v", bucket, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is a file, not a directory", bucket)
	}
	return nil
}

// Upload just copies the file from path to bucket/key
func (a *LocalConn) Upload(bucket string, key string, path string) error {
	dest := filepath.Join(bucket, filepath.FromSlash(key))
	a.Logger.Println("Copying", path, "to", dest)
	fin, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fin.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, fin)
	if err != nil {
		return err
	}
	return f.Close()
}
