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
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/storagetransfer/v1"
)

// CloudPlatformScope is requested for credentials that are not already
// scoped by the host they run on.
const CloudPlatformScope = storagetransfer.CloudPlatformScope

type (
	// CredentialFinder resolves application default credentials.
	CredentialFinder func(ctx context.Context, scopes ...string) (*google.Credentials, error)

	// CredentialScoper re-derives credentials from their JSON form.
	CredentialScoper func(ctx context.Context, jsonData []byte, scopes ...string) (*google.Credentials, error)

	// Authenticator produces the session used for every API call of an
	// invocation.
	Authenticator struct {
		Find   CredentialFinder
		Scope  CredentialScoper
		Scopes []string
	}
)

// DefaultAuthenticator uses the platform default credential chain.
func DefaultAuthenticator() *Authenticator {
	return &Authenticator{
		Find:   google.FindDefaultCredentials,
		Scope:  google.CredentialsFromJSON,
		Scopes: []string{CloudPlatformScope},
	}
}

// Credentials resolved from a key or user credential file carry their JSON
// form and need explicit scopes; metadata-server identities come pre-scoped.
func scopeRequired(creds *google.Credentials) bool {
	return len(creds.JSON) > 0
}

// Authenticate resolves default credentials and, when they are not
// pre-scoped, re-derives them with the configured scopes.
func (a *Authenticator) Authenticate(ctx context.Context) (*google.Credentials, error) {
	find := a.Find
	if find == nil {
		find = google.FindDefaultCredentials
	}
	creds, err := find(ctx)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	if creds == nil {
		return nil, &AuthError{}
	}
	if !scopeRequired(creds) {
		log.Debugln("Using pre-scoped default credentials")
		return creds, nil
	}

	scopes := a.Scopes
	if len(scopes) == 0 {
		scopes = []string{CloudPlatformScope}
	}
	scope := a.Scope
	if scope == nil {
		scope = google.CredentialsFromJSON
	}
	log.Debugln("Scoping default credentials to", strings.Join(scopes, " "))
	scoped, err := scope(ctx, creds.JSON, scopes...)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	if scoped.ProjectID == "" {
		scoped.ProjectID = creds.ProjectID
	}
	return scoped, nil
}
