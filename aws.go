// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package epsocr

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// AwsConn saves results to S3. It is designed to be
// interchangeable with LocalConn.
type AwsConn struct {
	// these should be set before running Init(), or left to defaults
	Region string
	Logger *log.Logger

	sess     *session.Session
	s3svc    *s3.S3
	uploader *s3manager.Uploader
}

// Init initialises the aws session and S3 services
func (a *AwsConn) Init() error {
	if a.Region == "" {
		a.Region = defaultAwsRegion
	}
	if a.Logger == nil {
		a.Logger = log.New(os.Stdout, "", 0)
	}

	var err error
	a.sess, err = session.NewSession(&aws.Config{
		Region: aws.String(a.Region),
	})
	if err != nil {
		return errors.New(fmt.Sprintf("Failed to set up aws session: %s", err))
	}
	a.s3svc = s3.New(a.sess)
	a.uploader = s3manager.NewUploader(a.sess)

	return nil
}

// CheckBucket checks that a bucket exists and can be accessed
func (a *AwsConn) CheckBucket(bucket string) error {
	a.Logger.Println("Checking bucket", bucket)
	_, err := a.s3svc.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		aerr, ok := err.(awserr.Error)
		if ok && aerr.Code() == "NotFound" {
			return fmt.Errorf("Bucket %s does not exist", bucket)
		}
		return fmt.Errorf("Error accessing bucket %s: %v", bucket, err)
	}
	return nil
}

// Upload uploads the file at path to bucket/key
func (a *AwsConn) Upload(bucket string, key string, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	a.Logger.Println("Uploading", path, "to", s3Scheme+bucket+"/"+key)
	_, err = a.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	return err
}
