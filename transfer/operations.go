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

	"github.com/pkg/errors"
	"google.golang.org/api/storagetransfer/v1"
)

// OperationsResult is the outcome of a status query.
type OperationsResult struct {
	Filter        OperationFilter
	Operations    []*storagetransfer.Operation
	NextPageToken string
}

// NoOperations reports that the query succeeded but matched nothing.
func (r *OperationsResult) NoOperations() bool {
	return r == nil || len(r.Operations) == 0
}

// OperationSummary flattens the parts of an operation worth showing a user.
type OperationSummary struct {
	Name          string `json:"name" yaml:"name"`
	JobName       string `json:"jobName,omitempty" yaml:"jobName,omitempty"`
	Status        string `json:"status,omitempty" yaml:"status,omitempty"`
	Done          bool   `json:"done" yaml:"done"`
	StartTime     string `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime       string `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	ObjectsFound  int64  `json:"objectsFound" yaml:"objectsFound"`
	ObjectsCopied int64  `json:"objectsCopied" yaml:"objectsCopied"`
	BytesFound    int64  `json:"bytesFound" yaml:"bytesFound"`
	BytesCopied   int64  `json:"bytesCopied" yaml:"bytesCopied"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
}

// DecodeMetadata unpacks the TransferOperation carried in an operation's
// metadata.  Operations without metadata yield an empty value.
func DecodeMetadata(op *storagetransfer.Operation) (*storagetransfer.TransferOperation, error) {
	meta := new(storagetransfer.TransferOperation)
	if op == nil || len(op.Metadata) == 0 {
		return meta, nil
	}
	if err := json.Unmarshal(op.Metadata, meta); err != nil {
		return nil, errors.Wrapf(err, "failed to decode metadata of operation %s", op.Name)
	}
	return meta, nil
}

// Summarize builds an OperationSummary for op.
func Summarize(op *storagetransfer.Operation) (*OperationSummary, error) {
	meta, err := DecodeMetadata(op)
	if err != nil {
		return nil, err
	}
	summary := &OperationSummary{
		Name:      op.Name,
		JobName:   meta.TransferJobName,
		Status:    meta.Status,
		Done:      op.Done,
		StartTime: meta.StartTime,
		EndTime:   meta.EndTime,
	}
	if counters := meta.Counters; counters != nil {
		summary.ObjectsFound = counters.ObjectsFoundFromSource
		summary.ObjectsCopied = counters.ObjectsCopiedToSink
		summary.BytesFound = counters.BytesFoundFromSource
		summary.BytesCopied = counters.BytesCopiedToSink
	}
	if op.Error != nil {
		summary.Error = op.Error.Message
	}
	return summary, nil
}
