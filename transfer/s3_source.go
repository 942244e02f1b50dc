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
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/storagetransfer/v1"
)

// AWSKeyResolver supplies the access key the service uses to read an S3
// source bucket.
type AWSKeyResolver interface {
	ResolveAWSKey(ctx context.Context) (*storagetransfer.AwsAccessKey, error)
}

// SDKKeyResolver reads keys from the AWS SDK default credential chain, or
// from Provider when one is set.
type SDKKeyResolver struct {
	Profile  string
	Region   string
	Provider aws.CredentialsProvider
}

func (r SDKKeyResolver) ResolveAWSKey(ctx context.Context) (*storagetransfer.AwsAccessKey, error) {
	provider := r.Provider
	if provider == nil {
		var err error
		if provider, err = r.defaultProvider(ctx); err != nil {
			return nil, err
		}
	}

	creds, err := provider.Retrieve(ctx)
	if err != nil {
		return nil, &AuthError{Err: errors.Wrap(err, "failed to retrieve AWS credentials")}
	}
	// The service stores the key with the job and cannot refresh it.
	if creds.SessionToken != "" {
		return nil, &AuthError{Err: errors.Errorf("AWS credentials from %s are temporary; a long-lived access key is required", creds.Source)}
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return nil, &AuthError{Err: errors.New("AWS credentials are missing an access key ID or secret")}
	}
	log.Debugf("Using AWS access key %s from %s", creds.AccessKeyID, creds.Source)
	return &storagetransfer.AwsAccessKey{
		AccessKeyId:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
	}, nil
}

func (r SDKKeyResolver) defaultProvider(ctx context.Context) (aws.CredentialsProvider, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if r.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(r.Profile))
	}
	if r.Region != "" {
		opts = append(opts, awsconfig.WithRegion(r.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, &AuthError{Err: errors.Wrap(err, "failed to load AWS configuration")}
	}
	if cfg.Credentials == nil {
		return nil, &AuthError{Err: errors.New("no AWS credentials provider configured")}
	}
	return cfg.Credentials, nil
}
