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

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds transferctl's own metrics; it is kept separate from the
// default registry so the textfile only carries what this tool records.
var Registry = prometheus.NewRegistry()

var (
	TransferAPIRequestsTotal = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "transferctl_api_requests_total",
		Help: "Total number of Storage Transfer Service API requests",
	}, []string{"method", "code"}) // method: transferJobs.create/transferOperations.list, code: 200/404/error

	TransferAPIRequestDuration = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transferctl_api_request_duration_seconds",
		Help:    "Storage Transfer Service API request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	TransferOperationsListed = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "transferctl_operations_listed_total",
		Help: "Total number of transfer operations returned by status queries",
	})
)

// ObserveAPIRequest records a single API call.  A code of zero means no HTTP
// response was received.
func ObserveAPIRequest(method string, code int, elapsed time.Duration) {
	codeLabel := "error"
	if code > 0 {
		codeLabel = strconv.Itoa(code)
	}
	TransferAPIRequestsTotal.WithLabelValues(method, codeLabel).Inc()
	TransferAPIRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// WriteTextfile writes the registry in the Prometheus text exposition format,
// suitable for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
