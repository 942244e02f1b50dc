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
	"net"
	"net/http"
	"sync"

	"github.com/pelicanplatform/transferctl/param"
)

var (
	// Our global transport that only will get reconfigured if needed
	transport *http.Transport

	onceTransport sync.Once
)

func init() {
	// Rebuild the transport on next use whenever its settings change.
	param.RegisterCallback("transport", func(oldConfig, newConfig *param.Config) {
		if oldConfig != nil && oldConfig.Transport != newConfig.Transport {
			ResetTransport()
		}
	})
}

// GetTransport returns the process-wide transport used for calls to the
// Storage Transfer Service, building it from the Transport.* parameters on
// first use.
func GetTransport() *http.Transport {
	onceTransport.Do(func() {
		setupTransport()
	})
	return transport
}

// ResetTransport discards the cached transport so the next GetTransport call
// re-reads the Transport.* parameters; intended for unit tests.
func ResetTransport() {
	onceTransport = sync.Once{}
	transport = nil
}

func setupTransport() {
	dialer := net.Dialer{
		Timeout:   param.Transport_DialerTimeout.GetDuration(),
		KeepAlive: param.Transport_DialerKeepAlive.GetDuration(),
	}

	transport = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          param.Transport_MaxIdleConns.GetInt(),
		IdleConnTimeout:       param.Transport_IdleConnTimeout.GetDuration(),
		TLSHandshakeTimeout:   param.Transport_TLSHandshakeTimeout.GetDuration(),
		ResponseHeaderTimeout: param.Transport_ResponseHeaderTimeout.GetDuration(),
		ForceAttemptHTTP2:     true,
	}
}
