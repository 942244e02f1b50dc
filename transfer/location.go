/***************************************************************
 *
 * Copyright (C) 2025, Pelican Project, Morgridge Institute for Research
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you
 * may not use this file except in compliance with the License.  You may
 * obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 ***************************************************************/

package transfer

import (
	"strings"
)

const (
	SchemeGCS = "gs"
	SchemeS3  = "s3"
)

// Location names a bucket and an optional object prefix within it.
type Location struct {
	Scheme string
	Bucket string
	Path   string
}

// ParseLocation accepts "gs://bucket[/prefix]", "s3://bucket[/prefix]" or a
// bare "bucket[/prefix]", which is taken to be a Cloud Storage bucket.  A
// non-empty prefix is normalized to end with "/", as the service requires.
func ParseLocation(field, raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, newValidationError(field, "a bucket name is required")
	}

	loc := Location{Scheme: SchemeGCS}
	if scheme, rest, found := strings.Cut(raw, "://"); found {
		switch strings.ToLower(scheme) {
		case SchemeGCS, SchemeS3:
			loc.Scheme = strings.ToLower(scheme)
		default:
			return Location{}, newValidationError(field, "unsupported scheme %q; use gs:// or s3://", scheme)
		}
		raw = rest
	}

	bucket, path, _ := strings.Cut(raw, "/")
	if bucket == "" {
		return Location{}, newValidationError(field, "a bucket name is required")
	}
	loc.Bucket = bucket
	loc.Path = normalizePath(path)
	return loc, nil
}

// WithPath returns a copy of the location with its prefix replaced; an empty
// path leaves the location unchanged.
func (l Location) WithPath(path string) Location {
	if path = normalizePath(path); path != "" {
		l.Path = path
	}
	return l
}

func (l Location) String() string {
	return l.Scheme + "://" + l.Bucket + "/" + l.Path
}

func normalizePath(path string) string {
	path = strings.TrimLeft(path, "/")
	if path != "" && !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
