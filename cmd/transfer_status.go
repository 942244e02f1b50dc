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
	"github.com/pelicanplatform/transferctl/transfer"
)

var (
	statusCmd = &cobra.Command{
		Use:   "status [JOB_ID]",
		Short: "Get the status of transfer operations",
		Long: `List the transfer operations of a job, or of every job in the project
when no JOB_ID is given.`,
		Args: ignoreExtraArgs(1),
		RunE: statusMain,
	}

	statusStates    []string
	statusPageSize  int64
	statusPageToken string
)

type operationsOutput struct {
	Filter        transfer.OperationFilter     `json:"filter"`
	Operations    []*storagetransfer.Operation `json:"operations"`
	NextPageToken string                       `json:"nextPageToken,omitempty"`
}

func init() {
	statusCmd.Flags().StringArrayVar(&statusStates, "state", nil, "Only show operations in this state (IN_PROGRESS, PAUSED, SUCCESS, FAILED, ABORTED, QUEUED, SUSPENDING); repeatable")
	statusCmd.Flags().Int64Var(&statusPageSize, "page-size", 0, "Maximum number of operations to return")
	statusCmd.Flags().StringVar(&statusPageToken, "page-token", "", "Continue a previous listing from this token")
}

func statusMain(cmd *cobra.Command, args []string) error {
	if err := config.InitClient(); err != nil {
		return errors.Wrap(err, "failed to initialize config")
	}
	format, err := outputFormat()
	if err != nil {
		return err
	}

	client := newTransferClient()
	result, err := client.QueryOperations(cmd.Context(), transfer.StatusQuery{
		JobName:          argAt(args, 0),
		TransferStatuses: statusStates,
		PageSize:         statusPageSize,
		PageToken:        statusPageToken,
	})
	if err != nil {
		var remoteErr *transfer.RemoteError
		if jobName := argAt(args, 0); jobName != "" && errors.As(err, &remoteErr) && remoteErr.NotFound() {
			return errors.Wrapf(err, "transfer job %s was not found in project %s", jobName, client.ProjectID())
		}
		return errors.Wrap(err, "failed to get job status")
	}

	if format != formatText {
		out := operationsOutput{
			Filter:        result.Filter,
			Operations:    result.Operations,
			NextPageToken: result.NextPageToken,
		}
		if out.Operations == nil {
			out.Operations = []*storagetransfer.Operation{}
		}
		return writeStructured(cmd.OutOrStdout(), format, out)
	}

	if result.NoOperations() {
		fmt.Fprintln(cmd.OutOrStdout(), "No transfer operations found")
		return nil
	}
	for idx, op := range result.Operations {
		if idx > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		summary, err := transfer.Summarize(op)
		if err != nil {
			log.Warningln("Unable to decode operation metadata:", err)
			summary = &transfer.OperationSummary{Name: op.Name, Done: op.Done}
		}
		printOperationSummary(cmd.OutOrStdout(), summary)
	}
	if result.NextPageToken != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nMore operations available; continue with --page-token %s\n", result.NextPageToken)
	}
	return nil
}

func printOperationSummary(w io.Writer, summary *transfer.OperationSummary) {
	fmt.Fprintf(w, "Operation: %s\n", summary.Name)
	if summary.JobName != "" {
		fmt.Fprintf(w, "  Job:     %s\n", summary.JobName)
	}
	status := summary.Status
	if status == "" {
		status = "UNKNOWN"
	}
	if summary.Done {
		status += " (done)"
	}
	fmt.Fprintf(w, "  Status:  %s\n", status)
	if summary.StartTime != "" {
		fmt.Fprintf(w, "  Started: %s\n", summary.StartTime)
	}
	if summary.EndTime != "" {
		fmt.Fprintf(w, "  Ended:   %s\n", summary.EndTime)
	}
	if summary.ObjectsFound > 0 || summary.ObjectsCopied > 0 {
		fmt.Fprintf(w, "  Objects: %d/%d copied\n", summary.ObjectsCopied, summary.ObjectsFound)
		fmt.Fprintf(w, "  Data:    %s / %s\n", formatBytes(summary.BytesCopied), formatBytes(summary.BytesFound))
	}
	if summary.Error != "" {
		fmt.Fprintf(w, "  Error:   %s\n", summary.Error)
	}
}
