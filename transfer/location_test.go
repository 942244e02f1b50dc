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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected Location
	}{
		{"bare-bucket", "my-bucket", Location{Scheme: SchemeGCS, Bucket: "my-bucket"}},
		{"bare-with-prefix", "my-bucket/data", Location{Scheme: SchemeGCS, Bucket: "my-bucket", Path: "data/"}},
		{"gs-url", "gs://my-bucket/", Location{Scheme: SchemeGCS, Bucket: "my-bucket"}},
		{"gs-url-with-prefix", "gs://my-bucket/a/b/", Location{Scheme: SchemeGCS, Bucket: "my-bucket", Path: "a/b/"}},
		{"s3-url", "S3://logs/2016", Location{Scheme: SchemeS3, Bucket: "logs", Path: "2016/"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := ParseLocation("source", tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, loc)
		})
	}

	for _, bad := range []string{"", "   ", "gs://", "https://example.com/bucket", "/prefix-only"} {
		_, err := ParseLocation("source", bad)
		assert.ErrorIs(t, err, &ValidationError{}, "input %q", bad)
	}
}

func TestLocationWithPath(t *testing.T) {
	loc := Location{Scheme: SchemeGCS, Bucket: "b", Path: "old/"}
	assert.Equal(t, "old/", loc.WithPath("").Path)
	assert.Equal(t, "new/dir/", loc.WithPath("/new/dir").Path)
	assert.Equal(t, "gs://b/old/", loc.String())
}
