// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const epsSuffix = ".eps"

// isEPS reports whether a file name has an EPS extension, ignoring case
func isEPS(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == epsSuffix
}

// stem returns the file name without its directory or extension
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CheckDir checks that path exists and is a directory
func CheckDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("Directory %s does not exist: %v", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is a file, not a directory", path)
	}
	return nil
}

// CheckEPS checks that path is an existing file with a ".eps" suffix
func CheckEPS(path string) error {
	if !isEPS(path) {
		return fmt.Errorf("%s is not an eps file", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("File %s does not exist: %v", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

// FindEPS lists all files with a ".eps" suffix (ignoring case) in a
// directory, sorted by name. Subdirectories are not searched, and
// files starting with "." are skipped to prevent automatically
// generated files like ._label.eps getting in the way.
func FindEPS(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("Failed to read directory %s: %v", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !isEPS(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}
