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
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pelicanplatform/transferctl/transfer"
)

const twoOperations = `{"operations":[
	{"name":"transferOperations/transferJobs-1234567890-1","done":true,
	 "metadata":{"transferJobName":"transferJobs/1234567890","status":"SUCCESS",
	  "counters":{"objectsFoundFromSource":"2","objectsCopiedToSink":"2","bytesFoundFromSource":"2048","bytesCopiedToSink":"2048"}}},
	{"name":"transferOperations/transferJobs-1234567890-2",
	 "metadata":{"transferJobName":"transferJobs/1234567890","status":"IN_PROGRESS"}}
]}`

func TestStatusCommand(t *testing.T) {
	setupCLITest(t)
	fake, srv := newFakeTransferAPI(t)
	fake.listBody = twoOperations
	authCalls := 0
	newAuthenticator = staticAuthenticator("", &authCalls)
	t.Setenv("GCLOUD_PROJECT", "my-project")

	out, err := runCLI(t, "--endpoint", srv.URL, "status", "1234567890")
	require.NoError(t, err)
	assert.JSONEq(t, `{"project_id":"my-project","job_names":["1234567890"]}`, fake.filter)

	assert.Contains(t, out, "Operation: transferOperations/transferJobs-1234567890-1")
	assert.Contains(t, out, "Status:  SUCCESS (done)")
	assert.Contains(t, out, "Objects: 2/2 copied")
	assert.Contains(t, out, "Data:    2.0 KiB / 2.0 KiB")
	assert.Contains(t, out, "Operation: transferOperations/transferJobs-1234567890-2")
	assert.Contains(t, out, "Status:  IN_PROGRESS")
}

func TestStatusCommandJSON(t *testing.T) {
	setupCLITest(t)
	fake, srv := newFakeTransferAPI(t)
	fake.listBody = twoOperations
	authCalls := 0
	newAuthenticator = staticAuthenticator("creds-project", &authCalls)

	out, err := runCLI(t, "--endpoint", srv.URL, "--json", "status", "--state", "success", "--state", "in_progress")
	require.NoError(t, err)
	assert.JSONEq(t, `{"project_id":"creds-project","transfer_statuses":["SUCCESS","IN_PROGRESS"]}`, fake.filter)

	var parsed struct {
		Filter     transfer.OperationFilter `json:"filter"`
		Operations []json.RawMessage        `json:"operations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Len(t, parsed.Operations, 2)
	assert.Equal(t, "creds-project", parsed.Filter.ProjectID)
}

func TestStatusCommandNoOperations(t *testing.T) {
	setupCLITest(t)
	fake, srv := newFakeTransferAPI(t)
	authCalls := 0
	newAuthenticator = staticAuthenticator("", &authCalls)

	out, err := runCLI(t, "--endpoint", srv.URL, "--project", "my-project", "status")
	require.NoError(t, err)
	assert.JSONEq(t, `{"project_id":"my-project"}`, fake.filter)
	assert.Contains(t, out, "No transfer operations found")

	out, err = runCLI(t, "--endpoint", srv.URL, "--project", "my-project", "--json", "status")
	require.NoError(t, err)
	assert.Contains(t, out, `"operations": []`)
}

func TestStatusCommandNotFound(t *testing.T) {
	setupCLITest(t)
	fake, srv := newFakeTransferAPI(t)
	fake.listStatus = http.StatusNotFound
	fake.listBody = twoOperations
	authCalls := 0
	newAuthenticator = staticAuthenticator("", &authCalls)

	out, err := runCLI(t, "--endpoint", srv.URL, "--project", "my-project", "status", "1234567890")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &transfer.RemoteError{}))
	assert.Contains(t, err.Error(), "transfer job 1234567890 was not found in project my-project")
	assert.NotContains(t, out, "Operation:")
}

func TestStatusCommandIgnoresExtraArgs(t *testing.T) {
	setupCLITest(t)
	fake, srv := newFakeTransferAPI(t)
	fake.listBody = twoOperations
	authCalls := 0
	newAuthenticator = staticAuthenticator("", &authCalls)

	out, err := runCLI(t, "--endpoint", srv.URL, "--project", "my-project", "status", "1234567890", "extra", "args")
	require.NoError(t, err)
	assert.JSONEq(t, `{"project_id":"my-project","job_names":["1234567890"]}`, fake.filter)
	assert.Contains(t, out, "Operation: transferOperations/transferJobs-1234567890-1")
}

func TestCommandsRunRepeatedly(t *testing.T) {
	setupCLITest(t)
	fake, srv := newFakeTransferAPI(t)
	fake.listBody = twoOperations
	authCalls := 0
	newAuthenticator = staticAuthenticator("my-project", &authCalls)

	for i := 0; i < 2; i++ {
		out, err := runCLI(t, "--endpoint", srv.URL, "status", "1234567890")
		require.NoError(t, err, "status run %d", i)
		assert.Contains(t, out, "Status:  SUCCESS (done)")

		out, err = runCLI(t, "--endpoint", srv.URL,
			"create", "my-bucket", "my-other-bucket", "2016/08/12", "16:30")
		require.NoError(t, err, "create run %d", i)
		assert.Contains(t, out, "Created transfer job transferJobs/1234567890")
	}
	assert.EqualValues(t, 4, fake.requests.Load())
}

func TestStatusCommandRejectsUnknownState(t *testing.T) {
	setupCLITest(t)
	fake, srv := newFakeTransferAPI(t)
	authCalls := 0
	newAuthenticator = staticAuthenticator("", &authCalls)

	_, err := runCLI(t, "--endpoint", srv.URL, "--project", "my-project", "status", "--state", "RUNNING")
	assert.True(t, errors.Is(err, &transfer.ValidationError{}))
	assert.Zero(t, authCalls)
	assert.Zero(t, fake.requests.Load())
}
