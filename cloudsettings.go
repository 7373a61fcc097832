// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package epsocr

// This file contains various cloud account specific stuff; change this if
// you want to use the cloud functionality on your own site.

const defaultAwsRegion = `eu-west-2`

// s3Scheme prefixes outputs which should be saved to S3 rather than
// to the local disk, like s3://bucket/prefix
const s3Scheme = "s3://"
