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
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pelicanplatform/transferctl/logging"
	"github.com/pelicanplatform/transferctl/param"
)

const (
	EnvPrefix = "TRANSFERCTL"

	DefaultTransferEndpoint = "https://storagetransfer.googleapis.com/"

	configName = "transferctl"
)

// Set the defaults that apply when neither the config file, the environment
// nor a flag provides a value.
func setDefaults(v *viper.Viper) {
	v.SetDefault(param.Logging_Level.GetName(), "info")
	v.SetDefault(param.Output_Format.GetName(), "text")
	v.SetDefault(param.Transfer_Endpoint.GetName(), DefaultTransferEndpoint)
	v.SetDefault(param.Transfer_UserAgent.GetName(), "transferctl/"+GetVersion())
	v.SetDefault(param.Transport_DialerTimeout.GetName(), 10*time.Second)
	v.SetDefault(param.Transport_DialerKeepAlive.GetName(), 30*time.Second)
	v.SetDefault(param.Transport_TLSHandshakeTimeout.GetName(), 15*time.Second)
	v.SetDefault(param.Transport_ResponseHeaderTimeout.GetName(), 60*time.Second)
	v.SetDefault(param.Transport_IdleConnTimeout.GetName(), 90*time.Second)
	v.SetDefault(param.Transport_MaxIdleConns.GetName(), 10)
}

// Locate the configuration file: an explicit --config wins, otherwise look
// for transferctl.yaml under ConfigDir (default $HOME/.config/transferctl).
func setConfigLocation(v *viper.Viper) {
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		return
	}

	configDir := v.GetString(param.ConfigDir.GetName())
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Debugln("Unable to determine home directory; no config directory will be searched:", err)
			return
		}
		configDir = filepath.Join(home, ".config", configName)
		v.SetDefault(param.ConfigDir.GetName(), configDir)
	}
	v.AddConfigPath(configDir)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
}

// InitConfigInternal loads defaults, environment variables and the optional
// YAML config file into the global viper instance and refreshes the param
// snapshot.  A missing default config file is not an error; a missing file
// passed via --config is.
func InitConfigInternal() error {
	v := viper.GetViper()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	param.BindAllParameters(v)

	setDefaults(v)
	bindLegacyEnv(v)

	setConfigLocation(v)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config file")
		}
		log.Debugln("No config file found; using defaults and environment")
	} else {
		log.Debugln("Using config file:", v.ConfigFileUsed())
	}

	if _, err := param.Refresh(); err != nil {
		return errors.Wrap(err, "failed to refresh configuration")
	}

	if unknownKeys := validateConfigKeys(); len(unknownKeys) > 0 {
		log.Warningf("Unknown configuration keys found: %s", strings.Join(unknownKeys, ", "))
	}
	return nil
}

// ResetConfig clears the global configuration state; intended for unit tests.
func ResetConfig() {
	_ = param.Reset()
	ResetTransport()
}

// InitConfig is registered with cobra.OnInitialize and exits the process on
// failure.
func InitConfig() {
	cobra.CheckErr(InitConfigInternal())
}

// InitClient prepares the process for a client command: it re-reads the
// parameter snapshot (flags are bound by now) and configures logging.
func InitClient() error {
	if _, err := param.Refresh(); err != nil {
		return errors.Wrap(err, "failed to refresh configuration")
	}

	level, err := GetEffectiveLogLevel()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return logging.FlushLogs(param.Logging_LogLocation.GetString() != "")
}

// GetEffectiveLogLevel returns the configured log level; Debug forces debug.
func GetEffectiveLogLevel() (log.Level, error) {
	if param.Debug.GetBool() {
		return log.DebugLevel, nil
	}
	levelStr := param.Logging_Level.GetString()
	if levelStr == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return log.InfoLevel, errors.Wrapf(err, "invalid value %q for %s", levelStr, param.Logging_Level.GetName())
	}
	return level, nil
}
