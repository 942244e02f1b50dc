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
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Values accepted in the transfer_statuses field of an operations filter.
var TransferStatuses = []string{
	"IN_PROGRESS",
	"PAUSED",
	"SUCCESS",
	"FAILED",
	"ABORTED",
	"QUEUED",
	"SUSPENDING",
}

// OperationFilter selects the transfer operations returned by a list call.
type OperationFilter struct {
	ProjectID        string   `json:"project_id"`
	JobNames         []string `json:"job_names,omitempty"`
	TransferStatuses []string `json:"transfer_statuses,omitempty"`
}

// NewOperationFilter scopes a filter to the project and, when jobName is
// non-empty, to that single job.
func NewOperationFilter(projectID, jobName string) OperationFilter {
	filter := OperationFilter{ProjectID: projectID}
	if jobName != "" {
		filter.JobNames = []string{jobName}
	}
	return filter
}

// Encode serializes the filter into the JSON string the list call expects.
func (f OperationFilter) Encode() (string, error) {
	buf, err := json.Marshal(f)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode operation filter")
	}
	return string(buf), nil
}

// NormalizeTransferStatus upper-cases a status name and checks it against the
// values the service understands.
func NormalizeTransferStatus(status string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(status))
	for _, known := range TransferStatuses {
		if normalized == known {
			return normalized, nil
		}
	}
	return "", newValidationError("state", "%q is not one of %s", status, strings.Join(TransferStatuses, ", "))
}
