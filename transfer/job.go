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
	"strings"

	"google.golang.org/api/storagetransfer/v1"
)

const (
	StatusEnabled = "ENABLED"

	jobNamePrefix = "transferJobs/"
)

type (
	// CreateJobRequest carries the raw arguments of a create invocation.
	CreateJobRequest struct {
		Source      string
		Destination string
		Date        string
		Time        string
		Description string

		// Optional
		Name       string
		SourcePath string
		DestPath   string
	}

	// JobSpec is the validated form of a CreateJobRequest.
	JobSpec struct {
		Name        string
		ProjectID   string
		Description string
		Status      string
		Source      Location
		Destination Location
		StartDate   Date
		StartTime   TimeOfDay

		// Set only for S3 sources.
		AwsAccessKey *storagetransfer.AwsAccessKey
	}
)

// NewJobSpec validates a request without touching the network.  The project
// is left empty for the caller to fill in.
func NewJobSpec(req CreateJobRequest) (*JobSpec, error) {
	if strings.TrimSpace(req.Source) == "" {
		return nil, newValidationError("source", "a source bucket is required")
	}
	if strings.TrimSpace(req.Destination) == "" {
		return nil, newValidationError("destination", "a destination bucket is required")
	}

	source, err := ParseLocation("source", req.Source)
	if err != nil {
		return nil, err
	}
	destination, err := ParseLocation("destination", req.Destination)
	if err != nil {
		return nil, err
	}
	if destination.Scheme != SchemeGCS {
		return nil, newValidationError("destination", "transfers can only be written to Cloud Storage buckets")
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := ParseTimeOfDay(req.Time)
	if err != nil {
		return nil, err
	}

	return &JobSpec{
		Name:        NormalizeJobName(req.Name),
		Description: req.Description,
		Status:      StatusEnabled,
		Source:      source.WithPath(req.SourcePath),
		Destination: destination.WithPath(req.DestPath),
		StartDate:   date,
		StartTime:   startTime,
	}, nil
}

// NormalizeJobName adds the "transferJobs/" prefix the service requires of
// client-chosen names.  An empty name lets the service pick one.
func NormalizeJobName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, jobNamePrefix) {
		return name
	}
	return jobNamePrefix + name
}

// TransferJob renders s as the resource sent to transferJobs.create.
// The schedule runs once: it ends on the day it starts.
func (s *JobSpec) TransferJob() *storagetransfer.TransferJob {
	transferSpec := &storagetransfer.TransferSpec{
		GcsDataSink: &storagetransfer.GcsData{
			BucketName: s.Destination.Bucket,
			Path:       s.Destination.Path,
		},
		TransferOptions: &storagetransfer.TransferOptions{
			DeleteObjectsFromSourceAfterTransfer: false,
			// The zero value would otherwise be dropped from the request body.
			ForceSendFields: []string{"DeleteObjectsFromSourceAfterTransfer"},
		},
	}
	switch s.Source.Scheme {
	case SchemeS3:
		transferSpec.AwsS3DataSource = &storagetransfer.AwsS3Data{
			BucketName:   s.Source.Bucket,
			Path:         s.Source.Path,
			AwsAccessKey: s.AwsAccessKey,
		}
	default:
		transferSpec.GcsDataSource = &storagetransfer.GcsData{
			BucketName: s.Source.Bucket,
			Path:       s.Source.Path,
		}
	}

	return &storagetransfer.TransferJob{
		Name:         s.Name,
		ProjectId:    s.ProjectID,
		Description:  s.Description,
		Status:       s.Status,
		TransferSpec: transferSpec,
		Schedule: &storagetransfer.Schedule{
			ScheduleStartDate: s.StartDate.apiDate(),
			ScheduleEndDate:   s.StartDate.apiDate(),
			StartTimeOfDay: &storagetransfer.TimeOfDay{
				Hours:   int64(s.StartTime.Hour),
				Minutes: int64(s.StartTime.Minute),
			},
		},
	}
}

func (d Date) apiDate() *storagetransfer.Date {
	return &storagetransfer.Date{
		Year:  int64(d.Year),
		Month: int64(d.Month),
		Day:   int64(d.Day),
	}
}

// redactJob returns a copy of job that is safe to log.
func redactJob(job *storagetransfer.TransferJob) *storagetransfer.TransferJob {
	if job == nil || job.TransferSpec == nil || job.TransferSpec.AwsS3DataSource == nil ||
		job.TransferSpec.AwsS3DataSource.AwsAccessKey == nil {
		return job
	}
	redacted := *job
	spec := *job.TransferSpec
	source := *spec.AwsS3DataSource
	source.AwsAccessKey = &storagetransfer.AwsAccessKey{
		AccessKeyId:     source.AwsAccessKey.AccessKeyId,
		SecretAccessKey: "REDACTED",
	}
	spec.AwsS3DataSource = &source
	redacted.TransferSpec = &spec
	return &redacted
}
