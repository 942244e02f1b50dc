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
	"sort"
	"time"
)

type (
	// Config is the decoded snapshot of every parameter transferctl knows about.
	Config struct {
		Aws struct {
			Profile string `mapstructure:"profile"`
			Region  string `mapstructure:"region"`
		} `mapstructure:"aws"`
		ConfigDir string `mapstructure:"configdir"`
		Debug     bool   `mapstructure:"debug"`
		Logging   struct {
			Level       string `mapstructure:"level"`
			LogLocation string `mapstructure:"loglocation"`
		} `mapstructure:"logging"`
		Monitoring struct {
			MetricsFile string `mapstructure:"metricsfile"`
		} `mapstructure:"monitoring"`
		Output struct {
			Format string `mapstructure:"format"`
		} `mapstructure:"output"`
		Transfer struct {
			Endpoint  string   `mapstructure:"endpoint"`
			ProjectId string   `mapstructure:"projectid"`
			Scopes    []string `mapstructure:"scopes"`
			UserAgent string   `mapstructure:"useragent"`
		} `mapstructure:"transfer"`
		Transport struct {
			DialerKeepAlive       time.Duration `mapstructure:"dialerkeepalive"`
			DialerTimeout         time.Duration `mapstructure:"dialertimeout"`
			IdleConnTimeout       time.Duration `mapstructure:"idleconntimeout"`
			MaxIdleConns          int           `mapstructure:"maxidleconns"`
			ResponseHeaderTimeout time.Duration `mapstructure:"responseheadertimeout"`
			TLSHandshakeTimeout   time.Duration `mapstructure:"tlshandshaketimeout"`
		} `mapstructure:"transport"`
	}

	StringParam struct {
		name string
		get  func(*Config) string
	}

	StringSliceParam struct {
		name string
		get  func(*Config) []string
	}

	BoolParam struct {
		name string
		get  func(*Config) bool
	}

	IntParam struct {
		name string
		get  func(*Config) int
	}

	DurationParam struct {
		name string
		get  func(*Config) time.Duration
	}
)

var (
	Aws_Profile         = StringParam{"Aws.Profile", func(c *Config) string { return c.Aws.Profile }}
	Aws_Region          = StringParam{"Aws.Region", func(c *Config) string { return c.Aws.Region }}
	ConfigDir           = StringParam{"ConfigDir", func(c *Config) string { return c.ConfigDir }}
	Logging_Level       = StringParam{"Logging.Level", func(c *Config) string { return c.Logging.Level }}
	Logging_LogLocation = StringParam{"Logging.LogLocation", func(c *Config) string { return c.Logging.LogLocation }}
	Output_Format       = StringParam{"Output.Format", func(c *Config) string { return c.Output.Format }}
	Transfer_Endpoint   = StringParam{"Transfer.Endpoint", func(c *Config) string { return c.Transfer.Endpoint }}
	Transfer_ProjectId  = StringParam{"Transfer.ProjectId", func(c *Config) string { return c.Transfer.ProjectId }}
	Transfer_UserAgent  = StringParam{"Transfer.UserAgent", func(c *Config) string { return c.Transfer.UserAgent }}

	Monitoring_MetricsFile = StringParam{"Monitoring.MetricsFile", func(c *Config) string { return c.Monitoring.MetricsFile }}

	Transfer_Scopes = StringSliceParam{"Transfer.Scopes", func(c *Config) []string { return c.Transfer.Scopes }}

	Debug = BoolParam{"Debug", func(c *Config) bool { return c.Debug }}

	Transport_MaxIdleConns = IntParam{"Transport.MaxIdleConns", func(c *Config) int { return c.Transport.MaxIdleConns }}

	Transport_DialerKeepAlive       = DurationParam{"Transport.DialerKeepAlive", func(c *Config) time.Duration { return c.Transport.DialerKeepAlive }}
	Transport_DialerTimeout         = DurationParam{"Transport.DialerTimeout", func(c *Config) time.Duration { return c.Transport.DialerTimeout }}
	Transport_IdleConnTimeout       = DurationParam{"Transport.IdleConnTimeout", func(c *Config) time.Duration { return c.Transport.IdleConnTimeout }}
	Transport_ResponseHeaderTimeout = DurationParam{"Transport.ResponseHeaderTimeout", func(c *Config) time.Duration { return c.Transport.ResponseHeaderTimeout }}
	Transport_TLSHandshakeTimeout   = DurationParam{"Transport.TLSHandshakeTimeout", func(c *Config) time.Duration { return c.Transport.TLSHandshakeTimeout }}
)

// Sorted list of every known key; used for env binding and unknown-key detection.
var allParameterNames = func() []string {
	names := []string{
		Aws_Profile.name, Aws_Region.name, ConfigDir.name,
		Logging_Level.name, Logging_LogLocation.name, Monitoring_MetricsFile.name,
		Output_Format.name, Transfer_Endpoint.name, Transfer_ProjectId.name,
		Transfer_UserAgent.name, Transfer_Scopes.name, Debug.name,
		Transport_MaxIdleConns.name, Transport_DialerKeepAlive.name,
		Transport_DialerTimeout.name, Transport_IdleConnTimeout.name,
		Transport_ResponseHeaderTimeout.name, Transport_TLSHandshakeTimeout.name,
	}
	sort.Strings(names)
	return names
}()

// AllParameterNames returns a copy of the sorted list of known keys.
func AllParameterNames() []string {
	return append([]string(nil), allParameterNames...)
}

func (sP StringParam) GetName() string {
	return sP.name
}

func (sP StringParam) GetString() string {
	return sP.get(getOrCreateConfig())
}

func (slP StringSliceParam) GetName() string {
	return slP.name
}

func (slP StringSliceParam) GetStringSlice() []string {
	return slP.get(getOrCreateConfig())
}

func (bP BoolParam) GetName() string {
	return bP.name
}

func (bP BoolParam) GetBool() bool {
	return bP.get(getOrCreateConfig())
}

func (iP IntParam) GetName() string {
	return iP.name
}

func (iP IntParam) GetInt() int {
	return iP.get(getOrCreateConfig())
}

func (dP DurationParam) GetName() string {
	return dP.name
}

func (dP DurationParam) GetDuration() time.Duration {
	return dP.get(getOrCreateConfig())
}
