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

// Package transfer submits one-shot jobs to the Google Cloud Storage Transfer
// Service and queries the state of their operations.
package transfer

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storagetransfer/v1"

	"github.com/pelicanplatform/transferctl/metrics"
)

const (
	methodCreateJob      = "transferJobs.create"
	methodListOperations = "transferOperations.list"

	operationsCollection = "transferOperations"
)

type (
	// Config is fixed at construction; nothing in this package reads the
	// environment.
	Config struct {
		ProjectID string
		Endpoint  string
		UserAgent string
		// Base transport under the OAuth2 layer; http.DefaultTransport when nil.
		Transport http.RoundTripper
	}

	// StatusQuery selects the operations returned by QueryOperations.
	StatusQuery struct {
		JobName          string
		TransferStatuses []string
		PageSize         int64
		PageToken        string
	}

	Option func(*Client)

	// Client owns the authenticated session of one invocation.  It is not safe
	// for concurrent use.
	Client struct {
		config  Config
		auth    *Authenticator
		awsKeys AWSKeyResolver

		service   *storagetransfer.Service
		projectID string
	}
)

func WithAuthenticator(auth *Authenticator) Option {
	return func(c *Client) {
		c.auth = auth
	}
}

func WithAWSKeyResolver(resolver AWSKeyResolver) Option {
	return func(c *Client) {
		c.awsKeys = resolver
	}
}

// NewClient returns a client; no credentials are resolved until the first
// call that needs them.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		config:    cfg,
		auth:      DefaultAuthenticator(),
		awsKeys:   SDKKeyResolver{},
		projectID: cfg.ProjectID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProjectID is the configured project, or the credentials' project once a
// session exists.
func (c *Client) ProjectID() string {
	return c.projectID
}

// Authenticate establishes the session used by later calls.  It is a no-op
// once a session exists.
func (c *Client) Authenticate(ctx context.Context) error {
	_, err := c.session(ctx)
	return err
}

func (c *Client) session(ctx context.Context) (*storagetransfer.Service, error) {
	if c.service != nil {
		return c.service, nil
	}

	creds, err := c.auth.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	if c.projectID == "" && creds.ProjectID != "" {
		log.Debugln("No project configured; using the credentials' project", creds.ProjectID)
		c.projectID = creds.ProjectID
	}

	base := c.config.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: creds.TokenSource, Base: base},
	}
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint := c.config.Endpoint; endpoint != "" {
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	service, err := storagetransfer.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Storage Transfer Service client")
	}
	if c.config.UserAgent != "" {
		service.UserAgent = c.config.UserAgent
	}
	c.service = service
	return service, nil
}

func (c *Client) requireProject() error {
	if c.projectID == "" {
		return newValidationError("project", "no project configured and none attached to the default credentials; set Transfer.ProjectId or --project")
	}
	return nil
}

// PlanTransferJob builds the job CreateTransferJob would submit, using only
// the configured project.  No credentials are resolved and S3 access keys are
// left out.
func (c *Client) PlanTransferJob(req CreateJobRequest) (*storagetransfer.TransferJob, error) {
	spec, err := NewJobSpec(req)
	if err != nil {
		return nil, err
	}
	spec.ProjectID = c.config.ProjectID
	return spec.TransferJob(), nil
}

// CreateTransferJob validates the request locally before authenticating, then submits a
// one-shot job.  The created job is returned as the service sent it.
func (c *Client) CreateTransferJob(ctx context.Context, req CreateJobRequest) (*storagetransfer.TransferJob, error) {
	spec, err := NewJobSpec(req)
	if err != nil {
		return nil, err
	}

	service, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.requireProject(); err != nil {
		return nil, err
	}
	spec.ProjectID = c.projectID

	if spec.Source.Scheme == SchemeS3 {
		if spec.AwsAccessKey, err = c.awsKeys.ResolveAWSKey(ctx); err != nil {
			return nil, err
		}
	}

	job := spec.TransferJob()
	if log.IsLevelEnabled(log.DebugLevel) {
		if buf, err := json.Marshal(redactJob(job)); err == nil {
			log.Debugln("Submitting transfer job:", string(buf))
		}
	}

	start := time.Now()
	created, err := service.TransferJobs.Create(job).Context(ctx).Do()
	observe(methodCreateJob, created, err, start)
	if err != nil {
		return nil, newRemoteError(methodCreateJob, err)
	}
	log.Infof("Created transfer job %s in project %s", created.Name, created.ProjectId)
	return created, nil
}

// GetJobStatus lists the operations of jobName, or of every job in the
// project when jobName is empty.
func (c *Client) GetJobStatus(ctx context.Context, jobName string) (*OperationsResult, error) {
	return c.QueryOperations(ctx, StatusQuery{JobName: jobName})
}

// QueryOperations is GetJobStatus with status filtering and paging.  A 404 is
// a RemoteError even when the body lists operations.
func (c *Client) QueryOperations(ctx context.Context, query StatusQuery) (*OperationsResult, error) {
	statuses := make([]string, 0, len(query.TransferStatuses))
	for _, status := range query.TransferStatuses {
		normalized, err := NormalizeTransferStatus(status)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, normalized)
	}
	if query.PageSize < 0 {
		return nil, newValidationError("page size", "must not be negative")
	}

	service, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.requireProject(); err != nil {
		return nil, err
	}

	filter := NewOperationFilter(c.projectID, query.JobName)
	if len(statuses) > 0 {
		filter.TransferStatuses = statuses
	}
	encoded, err := filter.Encode()
	if err != nil {
		return nil, err
	}
	log.Debugln("Listing transfer operations with filter", encoded)

	call := service.TransferOperations.List(operationsCollection, encoded).Context(ctx)
	if query.PageSize > 0 {
		call = call.PageSize(query.PageSize)
	}
	if query.PageToken != "" {
		call = call.PageToken(query.PageToken)
	}
	start := time.Now()
	resp, err := call.Do()
	observe(methodListOperations, resp, err, start)
	if err != nil {
		return nil, newRemoteError(methodListOperations, err)
	}

	result := &OperationsResult{
		Filter:        filter,
		Operations:    resp.Operations,
		NextPageToken: resp.NextPageToken,
	}
	metrics.TransferOperationsListed.Add(float64(len(result.Operations)))
	if result.NoOperations() {
		log.Infoln("No transfer operations matched", encoded)
	} else {
		log.Infof("Found %d transfer operations", len(result.Operations))
	}
	return result, nil
}

func observe(method string, resp interface{}, err error, start time.Time) {
	metrics.ObserveAPIRequest(method, responseCode(resp, err), time.Since(start))
}

// responseCode picks the HTTP status of a call: from the error when the
// service rejected it, zero when no response arrived.
func responseCode(resp interface{}, err error) int {
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return apiErr.Code
		}
		return 0
	}
	switch r := resp.(type) {
	case *storagetransfer.TransferJob:
		if r != nil {
			return r.HTTPStatusCode
		}
	case *storagetransfer.ListOperationsResponse:
		if r != nil {
			return r.HTTPStatusCode
		}
	}
	return 0
}
