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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/storagetransfer/v1"
)

func TestNewJobSpecRejectsMissingBuckets(t *testing.T) {
	_, err := NewJobSpec(CreateJobRequest{Destination: "dst", Date: "2016/08/12", Time: "16:30"})
	assert.ErrorIs(t, err, &ValidationError{})
	assert.Contains(t, err.Error(), "source")

	_, err = NewJobSpec(CreateJobRequest{Source: "src", Date: "2016/08/12", Time: "16:30"})
	assert.ErrorIs(t, err, &ValidationError{})
	assert.Contains(t, err.Error(), "destination")
}

func TestNewJobSpecRejectsS3Destination(t *testing.T) {
	_, err := NewJobSpec(CreateJobRequest{Source: "src", Destination: "s3://dst", Date: "2016/08/12", Time: "16:30"})
	assert.ErrorIs(t, err, &ValidationError{})
}

func TestTransferJob(t *testing.T) {
	spec, err := NewJobSpec(CreateJobRequest{
		Source:      "my-bucket",
		Destination: "gs://my-other-bucket",
		Date:        "2016/08/12",
		Time:        "16:30",
		Description: "Move my files",
		DestPath:    "incoming",
	})
	require.NoError(t, err)
	spec.ProjectID = "my-project"

	job := spec.TransferJob()
	assert.Equal(t, "my-project", job.ProjectId)
	assert.Equal(t, "Move my files", job.Description)
	assert.Equal(t, StatusEnabled, job.Status)
	assert.Empty(t, job.Name)

	require.NotNil(t, job.TransferSpec.GcsDataSource)
	assert.Equal(t, "my-bucket", job.TransferSpec.GcsDataSource.BucketName)
	assert.Equal(t, "my-other-bucket", job.TransferSpec.GcsDataSink.BucketName)
	assert.Equal(t, "incoming/", job.TransferSpec.GcsDataSink.Path)
	assert.Nil(t, job.TransferSpec.AwsS3DataSource)

	assert.Equal(t, &storagetransfer.Date{Year: 2016, Month: 8, Day: 12}, job.Schedule.ScheduleStartDate)
	assert.Equal(t, job.Schedule.ScheduleStartDate, job.Schedule.ScheduleEndDate)
	assert.Equal(t, &storagetransfer.TimeOfDay{Hours: 16, Minutes: 30}, job.Schedule.StartTimeOfDay)

	buf, err := json.Marshal(job)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"deleteObjectsFromSourceAfterTransfer":false`)
}

func TestTransferJobS3Source(t *testing.T) {
	spec, err := NewJobSpec(CreateJobRequest{
		Source:      "s3://logs/2016",
		Destination: "archive",
		Date:        "2016/08/12",
		Time:        "16:30",
	})
	require.NoError(t, err)
	spec.AwsAccessKey = &storagetransfer.AwsAccessKey{AccessKeyId: "AKIDEXAMPLE", SecretAccessKey: "secret"}

	job := spec.TransferJob()
	assert.Nil(t, job.TransferSpec.GcsDataSource)
	require.NotNil(t, job.TransferSpec.AwsS3DataSource)
	assert.Equal(t, "logs", job.TransferSpec.AwsS3DataSource.BucketName)
	assert.Equal(t, "2016/", job.TransferSpec.AwsS3DataSource.Path)

	redacted := redactJob(job)
	assert.Equal(t, "REDACTED", redacted.TransferSpec.AwsS3DataSource.AwsAccessKey.SecretAccessKey)
	assert.Equal(t, "AKIDEXAMPLE", redacted.TransferSpec.AwsS3DataSource.AwsAccessKey.AccessKeyId)
	// The input job keeps its secret.
	assert.Equal(t, "secret", job.TransferSpec.AwsS3DataSource.AwsAccessKey.SecretAccessKey)
}

func TestNormalizeJobName(t *testing.T) {
	assert.Equal(t, "", NormalizeJobName(""))
	assert.Equal(t, "transferJobs/nightly", NormalizeJobName("nightly"))
	assert.Equal(t, "transferJobs/nightly", NormalizeJobName("transferJobs/nightly"))
}
