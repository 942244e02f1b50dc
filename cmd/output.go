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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pelicanplatform/transferctl/param"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// outputFormat resolves --json/--yaml, falling back to Output.Format.
func outputFormat() (string, error) {
	switch {
	case outputJSON:
		return formatJSON, nil
	case outputYAML:
		return formatYAML, nil
	}
	switch format := strings.ToLower(param.Output_Format.GetString()); format {
	case "", formatText:
		return formatText, nil
	case formatJSON, formatYAML:
		return format, nil
	default:
		return "", errors.Errorf("unknown output format %q; expected text, json or yaml", format)
	}
}

// writeStructured renders v as indented JSON or as block-style YAML.  The
// YAML is produced from the JSON form so both use the API's field names.
func writeStructured(w io.Writer, format string, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}
	if format == formatJSON {
		_, err = fmt.Fprintln(w, string(buf))
		return err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(buf, &node); err != nil {
		return errors.Wrap(err, "failed to convert output to YAML")
	}
	blockStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return errors.Wrap(err, "failed to write YAML output")
	}
	return enc.Close()
}

// JSON parses as flow-style YAML with quoted strings; reset every node so the
// encoder picks plain block style, quoting only where needed.
func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}

func formatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
