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

package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/pelicanplatform/transferctl/param"
)

// findFieldByTag searches for a field in a struct by the value of a tag. This is used to
// check our Config struct against viper keys so we can warn users about keys transferctl
// does not understand.
func findFieldByTag(t reflect.Type, tagKey, tagValue string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get(tagKey) == tagValue {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

// validateConfigKeys checks keys in the Viper config (and TRANSFERCTL_ environment
// variables) against fields in the param.Config struct and returns the unknown ones.
func validateConfigKeys() []string {
	unknownKeys := []string{}
	keys := viper.AllKeys()

	// viper.AllKeys() won't report env-only values that were never bound.
	for _, env := range os.Environ() {
		name := strings.SplitN(env, "=", 2)[0]
		if !strings.HasPrefix(name, EnvPrefix+"_") {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix+"_"))
		keys = append(keys, strings.ReplaceAll(key, "_", "."))
	}

	configType := reflect.TypeOf(param.Config{})
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true

		// The --config flag is bound under this key but is not a parameter.
		if key == "config" {
			continue
		}

		currentType := configType
		for _, part := range strings.Split(key, ".") {
			field, present := findFieldByTag(currentType, "mapstructure", part)
			if !present {
				unknownKeys = append(unknownKeys, key)
				break
			}
			if field.Type.Kind() != reflect.Struct {
				break
			}
			currentType = field.Type
		}
	}

	return unknownKeys
}
