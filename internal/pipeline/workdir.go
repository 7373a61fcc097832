// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"os"
)

// workDirPattern is the prefix of the hidden working directory; a
// random suffix is added so concurrent runs don't share one
const workDirPattern = ".number_recognition"

// WorkDir is a temporary directory for the intermediate files of a
// single run. It should be removed with Close once the run is over,
// whatever happened.
type WorkDir struct {
	Path   string
	closed bool
}

// NewWorkDir creates a new hidden working directory inside parent
func NewWorkDir(parent string) (*WorkDir, error) {
	p, err := os.MkdirTemp(parent, workDirPattern)
	if err != nil {
		return nil, fmt.Errorf("Error creating working directory in %s: %v", parent, err)
	}
	return &WorkDir{Path: p}, nil
}

// Close removes the working directory and everything in it. It is
// safe to call more than once.
func (w *WorkDir) Close() error {
	if w.closed {
		return nil
	}
	err := os.RemoveAll(w.Path)
	if err != nil {
		return fmt.Errorf("Error removing working directory %s: %v", w.Path, err)
	}
	w.closed = true
	return nil
}
