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

package param

import (
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var (
	viperConfig atomic.Pointer[Config]
	configMutex sync.Mutex
	callbacks   map[string]ConfigCallback
	callbackMux sync.RWMutex
)

// ConfigCallback is a function that is called when configuration changes.
// It receives the old and new configuration.
type ConfigCallback func(oldConfig, newConfig *Config)

func init() {
	callbacks = make(map[string]ConfigCallback)
}

// Refresh reloads the atomic cached configuration from viper's *global* instance.
//
// The param accessors read from an atomic cached `Config` struct. Any code that
// mutates configuration via global viper APIs (SetDefault, Set, ReadInConfig, etc.)
// should call Refresh afterwards to keep param getters consistent with viper.
func Refresh() (*Config, error) {
	return decodeAndStoreConfig(viper.GetViper())
}

// BindAllParameters binds all known configuration keys to environment variables.
//
// Viper's AllSettings() does not include env-only values unless the key is
// explicitly bound, so every known key is bound before a snapshot is decoded.
func BindAllParameters(v *viper.Viper) {
	if v == nil {
		return
	}

	for _, key := range allParameterNames {
		_ = v.BindEnv(key)
	}
}

// stringToSliceHookFunc converts strings to slices by splitting on commas or,
// when no comma is present, on whitespace. Surrounding quotes are trimmed from
// the whole string and from each element; empty elements are dropped.
func stringToSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Kind, t reflect.Kind, data interface{}) (interface{}, error) {
		if f != reflect.String || t != reflect.Slice {
			return data, nil
		}

		raw := strings.Trim(data.(string), `"'`)
		if raw == "" {
			return []string{}, nil
		}

		var parts []string
		if strings.Contains(raw, ",") {
			parts = strings.Split(raw, ",")
		} else {
			parts = strings.Fields(raw)
		}

		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result, nil
	}
}

func newDecoder(result *Config) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToSliceHookFunc(),
		),
		MatchName: func(mapKey, fieldName string) bool {
			return strings.EqualFold(mapKey, fieldName)
		},
		Result: result,
	})
}

// DecodeConfig decodes the provided viper instance into a new Config struct
// without touching the global snapshot.
func DecodeConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, errors.New("nil viper instance")
	}
	BindAllParameters(v)
	settings := v.AllSettings()
	mergeKnownKeyOverrides(settings, v)

	newConfig := new(Config)
	decoder, err := newDecoder(newConfig)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}
	return newConfig, nil
}

// Viper's AllSettings() may omit values that only come from bindings (e.g.
// cobra flags), so overlay every known key explicitly.
func mergeKnownKeyOverrides(settings map[string]any, v *viper.Viper) {
	for _, key := range allParameterNames {
		val := v.Get(key)
		if val == nil {
			continue
		}
		setLowercasePath(settings, strings.Split(key, "."), val)
	}
}

func setLowercasePath(root map[string]any, path []string, val any) {
	if len(path) == 0 {
		return
	}

	m := root
	for _, part := range path[:len(path)-1] {
		k := strings.ToLower(part)
		if next, ok := m[k].(map[string]any); ok {
			m = next
			continue
		}
		next := make(map[string]any)
		m[k] = next
		m = next
	}
	m[strings.ToLower(path[len(path)-1])] = val
}

func decodeAndStoreConfig(v *viper.Viper) (*Config, error) {
	configMutex.Lock()
	defer configMutex.Unlock()
	newConfig, err := DecodeConfig(v)
	if err != nil {
		return nil, err
	}
	oldConfig := viperConfig.Swap(newConfig)
	invokeCallbacks(oldConfig, newConfig)
	return newConfig, nil
}

// Return the unmarshaled viper config struct as a pointer
func GetUnmarshaledConfig() (*Config, error) {
	config := viperConfig.Load()
	if config == nil {
		return nil, errors.New("Config hasn't been unmarshaled yet.")
	}
	return config, nil
}

// getOrCreateConfig returns the current snapshot, decoding one from the global
// viper instance on first use.
func getOrCreateConfig() *Config {
	if config := viperConfig.Load(); config != nil {
		return config
	}
	config, err := decodeAndStoreConfig(viper.GetViper())
	if err != nil {
		return new(Config)
	}
	return config
}

// Set sets a parameter value in both viper and the config struct.
func Set(key string, value interface{}) error {
	return MultiSet(map[string]interface{}{key: value})
}

// MultiSet sets multiple parameter values in viper and refreshes the snapshot once.
func MultiSet(keyValues map[string]interface{}) error {
	for key, value := range keyValues {
		viper.Set(key, value)
	}
	_, err := decodeAndStoreConfig(viper.GetViper())
	return err
}

// Reset resets the viper configuration and clears the config snapshot.
func Reset() error {
	configMutex.Lock()
	defer configMutex.Unlock()

	viper.Reset()
	viperConfig.Store(nil)
	return nil
}

// RegisterCallback registers a callback invoked whenever the snapshot changes.
// A callback registered under an existing key replaces the previous one.
func RegisterCallback(key string, cb ConfigCallback) {
	callbackMux.Lock()
	defer callbackMux.Unlock()
	callbacks[key] = cb
}

// ClearCallbacks clears all registered callbacks.
func ClearCallbacks() {
	callbackMux.Lock()
	defer callbackMux.Unlock()
	callbacks = make(map[string]ConfigCallback)
}

// Must be called while holding configMutex.
func invokeCallbacks(oldConfig, newConfig *Config) {
	callbackMux.RLock()
	defer callbackMux.RUnlock()

	for _, cb := range callbacks {
		cb(oldConfig, newConfig)
	}
}
