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

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pelicanplatform/transferctl/param"
)

func TestOutputFormat(t *testing.T) {
	setupCLITest(t)

	format, err := outputFormat()
	require.NoError(t, err)
	assert.Equal(t, formatText, format)

	require.NoError(t, param.Set(param.Output_Format.GetName(), "YAML"))
	format, err = outputFormat()
	require.NoError(t, err)
	assert.Equal(t, formatYAML, format)

	outputJSON = true
	format, err = outputFormat()
	require.NoError(t, err)
	assert.Equal(t, formatJSON, format)
	outputJSON = false

	require.NoError(t, param.Set(param.Output_Format.GetName(), "xml"))
	_, err = outputFormat()
	assert.Error(t, err)
}

func TestWriteStructuredYAML(t *testing.T) {
	value := struct {
		Name   string   `json:"name"`
		Count  int64    `json:"count,string"`
		Labels []string `json:"labels"`
		Empty  []string `json:"empty"`
	}{Name: "transferJobs/1", Count: 42, Labels: []string{"a", "b"}, Empty: []string{}}

	var buf bytes.Buffer
	require.NoError(t, writeStructured(&buf, formatYAML, value))
	assert.Equal(t, `name: transferJobs/1
count: "42"
labels:
  - a
  - b
empty: []
`, buf.String())
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KiB", formatBytes(1024))
	assert.Equal(t, "1.5 MiB", formatBytes(1536*1024))
}
