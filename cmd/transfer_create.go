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
	"fmt"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/api/storagetransfer/v1"

	"github.com/pelicanplatform/transferctl/config"
	"github.com/pelicanplatform/transferctl/param"
	"github.com/pelicanplatform/transferctl/transfer"
)

var (
	createCmd = &cobra.Command{
		Use:   "create SRC_BUCKET DEST_BUCKET DATE TIME [DESCRIPTION]",
		Short: "Create a one-shot transfer job",
		Long: `Create a transfer job that copies every object of SRC_BUCKET into
DEST_BUCKET once, starting at DATE (YYYY/MM/DD) and TIME (HH:mm, UTC).

Buckets may be given bare or as gs://bucket[/prefix]; an Amazon S3 source
is written s3://bucket[/prefix] and uses the AWS default credential chain.
Objects are never deleted from the source.`,
		Example: `  transferctl create my-bucket my-other-bucket 2016/08/12 16:30 "Move my files"`,
		Args:    ignoreExtraArgs(5),
		RunE:    createMain,
	}

	createJobName    string
	createDryRun     bool
	createSourcePath string
	createDestPath   string

	// Overridden in tests.
	newAuthenticator = func() *transfer.Authenticator {
		auth := transfer.DefaultAuthenticator()
		if scopes := param.Transfer_Scopes.GetStringSlice(); len(scopes) > 0 {
			auth.Scopes = scopes
		}
		return auth
	}
)

func init() {
	createCmd.Flags().StringVar(&createJobName, "name", "", "Name for the job; the service picks one when empty")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Print the job that would be created without contacting the service")
	createCmd.Flags().StringVar(&createSourcePath, "source-path", "", "Only transfer objects under this prefix of the source bucket")
	createCmd.Flags().StringVar(&createDestPath, "dest-path", "", "Write objects under this prefix of the destination bucket")
}

func newTransferClient() *transfer.Client {
	cfg := transfer.Config{
		ProjectID: param.Transfer_ProjectId.GetString(),
		Endpoint:  param.Transfer_Endpoint.GetString(),
		UserAgent: param.Transfer_UserAgent.GetString(),
		Transport: config.GetTransport(),
	}
	awsKeys := transfer.SDKKeyResolver{
		Profile: param.Aws_Profile.GetString(),
		Region:  param.Aws_Region.GetString(),
	}
	return transfer.NewClient(cfg,
		transfer.WithAuthenticator(newAuthenticator()),
		transfer.WithAWSKeyResolver(awsKeys),
	)
}

// Missing positional arguments are passed on empty so the client reports
// them as validation errors.
func argAt(args []string, idx int) string {
	if idx < len(args) {
		return args[idx]
	}
	return ""
}

// ignoreExtraArgs accepts any number of positional arguments; those past limit
// are logged and dropped by the command.
func ignoreExtraArgs(limit int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > limit {
			log.Warningf("Ignoring extra arguments to %s: %v", cmd.Name(), args[limit:])
		}
		return nil
	}
}

func createMain(cmd *cobra.Command, args []string) error {
	if err := config.InitClient(); err != nil {
		return errors.Wrap(err, "failed to initialize config")
	}
	format, err := outputFormat()
	if err != nil {
		return err
	}

	req := transfer.CreateJobRequest{
		Source:      argAt(args, 0),
		Destination: argAt(args, 1),
		Date:        argAt(args, 2),
		Time:        argAt(args, 3),
		Description: argAt(args, 4),
		Name:        createJobName,
		SourcePath:  createSourcePath,
		DestPath:    createDestPath,
	}
	client := newTransferClient()

	var job *storagetransfer.TransferJob
	if createDryRun {
		if job, err = client.PlanTransferJob(req); err != nil {
			return err
		}
	} else if job, err = client.CreateTransferJob(cmd.Context(), req); err != nil {
		return errors.Wrap(err, "failed to create transfer job")
	}

	if format != formatText {
		return writeStructured(cmd.OutOrStdout(), format, job)
	}
	printTransferJob(cmd.OutOrStdout(), job, createDryRun)
	return nil
}

func printTransferJob(w io.Writer, job *storagetransfer.TransferJob, planned bool) {
	switch {
	case planned && job.Name == "":
		fmt.Fprintln(w, "Would create transfer job (name assigned by the service)")
	case planned:
		fmt.Fprintf(w, "Would create transfer job %s\n", job.Name)
	default:
		fmt.Fprintf(w, "Created transfer job %s\n", job.Name)
	}
	fmt.Fprintf(w, "  Project:     %s\n", job.ProjectId)
	if job.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", job.Description)
	}
	if spec := job.TransferSpec; spec != nil {
		fmt.Fprintf(w, "  Source:      %s\n", describeSource(spec))
		if spec.GcsDataSink != nil {
			fmt.Fprintf(w, "  Destination: gs://%s/%s\n", spec.GcsDataSink.BucketName, spec.GcsDataSink.Path)
		}
	}
	if schedule := job.Schedule; schedule != nil && schedule.ScheduleStartDate != nil {
		start := schedule.ScheduleStartDate
		fmt.Fprintf(w, "  Starts:      %04d/%02d/%02d", start.Year, start.Month, start.Day)
		if tod := schedule.StartTimeOfDay; tod != nil {
			fmt.Fprintf(w, " %02d:%02d UTC", tod.Hours, tod.Minutes)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  Status:      %s\n", job.Status)
}

func describeSource(spec *storagetransfer.TransferSpec) string {
	switch {
	case spec.GcsDataSource != nil:
		return fmt.Sprintf("gs://%s/%s", spec.GcsDataSource.BucketName, spec.GcsDataSource.Path)
	case spec.AwsS3DataSource != nil:
		return fmt.Sprintf("s3://%s/%s", spec.AwsS3DataSource.BucketName, spec.AwsS3DataSource.Path)
	case spec.HttpDataSource != nil:
		return spec.HttpDataSource.ListUrl
	}
	return "unknown"
}
