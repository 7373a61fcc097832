// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package epsocr

import (
	"fmt"
	"log"
	"path"
	"path/filepath"
	"strings"
)

// Conn is a place results can be saved to
type Conn interface {
	Init() error
	CheckBucket(bucket string) error
	Upload(bucket string, key string, path string) error
}

// Location is an output directory or file, either on the local
// disk or in S3. For local locations Bucket is a directory.
type Location struct {
	Remote bool
	Bucket string
	Key    string
}

func (l Location) String() string {
	if l.Remote {
		return s3Scheme + path.Join(l.Bucket, l.Key)
	}
	return filepath.Join(l.Bucket, filepath.FromSlash(l.Key))
}

// Conn returns an uninitialised connection suitable for the location
func (l Location) Conn(region string, logger *log.Logger) Conn {
	if l.Remote {
		return &AwsConn{Region: region, Logger: logger}
	}
	return &LocalConn{Logger: logger}
}

// splitS3 splits s3://bucket/some/key into bucket and some/key
func splitS3(s string) (string, string, error) {
	p := strings.Trim(strings.TrimPrefix(s, s3Scheme), "/")
	parts := strings.SplitN(p, "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("No bucket name in %s", s)
	}
	if len(parts) == 1 {
		return parts[0], "", nil
	}
	return parts[0], parts[1], nil
}

// ParseDir parses an output directory, which can either be a local
// directory or an S3 bucket optionally followed by a key prefix,
// like s3://bucket/prefix
func ParseDir(s string) (Location, error) {
	if !strings.HasPrefix(s, s3Scheme) {
		return Location{Bucket: s}, nil
	}
	bucket, prefix, err := splitS3(s)
	if err != nil {
		return Location{}, err
	}
	return Location{Remote: true, Bucket: bucket, Key: prefix}, nil
}

// ParseFile parses an output file, which can either be a local path
// or an S3 bucket and key, like s3://bucket/dir/file.txt
func ParseFile(s string) (Location, error) {
	if !strings.HasPrefix(s, s3Scheme) {
		if s == "" {
			return Location{}, fmt.Errorf("No output file given")
		}
		return Location{Bucket: filepath.Dir(s), Key: filepath.Base(s)}, nil
	}
	bucket, key, err := splitS3(s)
	if err != nil {
		return Location{}, err
	}
	if key == "" {
		return Location{}, fmt.Errorf("No file name in %s", s)
	}
	return Location{Remote: true, Bucket: bucket, Key: key}, nil
}
