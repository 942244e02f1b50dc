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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func TestAuthenticatePreScoped(t *testing.T) {
	scoped := false
	auth := &Authenticator{
		Find: func(ctx context.Context, scopes ...string) (*google.Credentials, error) {
			assert.Empty(t, scopes)
			return &google.Credentials{ProjectID: "metadata-project"}, nil
		},
		Scope: func(ctx context.Context, jsonData []byte, scopes ...string) (*google.Credentials, error) {
			scoped = true
			return nil, errors.New("should not be called")
		},
	}

	creds, err := auth.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "metadata-project", creds.ProjectID)
	assert.False(t, scoped)
}

func TestAuthenticateScopesFileCredentials(t *testing.T) {
	keyFile := []byte(`{"type":"service_account"}`)
	var gotScopes []string
	auth := DefaultAuthenticator()
	auth.Find = func(ctx context.Context, scopes ...string) (*google.Credentials, error) {
		return &google.Credentials{ProjectID: "key-project", JSON: keyFile}, nil
	}
	auth.Scope = func(ctx context.Context, jsonData []byte, scopes ...string) (*google.Credentials, error) {
		assert.Equal(t, keyFile, jsonData)
		gotScopes = scopes
		return &google.Credentials{
			JSON:        jsonData,
			TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "scoped"}),
		}, nil
	}

	creds, err := auth.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.googleapis.com/auth/cloud-platform"}, gotScopes)
	assert.Equal(t, "key-project", creds.ProjectID)
	token, err := creds.TokenSource.Token()
	require.NoError(t, err)
	assert.Equal(t, "scoped", token.AccessToken)
}

func TestAuthenticateFailures(t *testing.T) {
	t.Run("no-default-credentials", func(t *testing.T) {
		auth := &Authenticator{
			Find: func(ctx context.Context, scopes ...string) (*google.Credentials, error) {
				return nil, errors.New("could not find default credentials")
			},
		}
		_, err := auth.Authenticate(context.Background())
		assert.ErrorIs(t, err, &AuthError{})
		assert.Contains(t, err.Error(), "could not find default credentials")
	})

	t.Run("scoping-fails", func(t *testing.T) {
		auth := &Authenticator{
			Find: func(ctx context.Context, scopes ...string) (*google.Credentials, error) {
				return &google.Credentials{JSON: []byte("{}")}, nil
			},
			Scope: func(ctx context.Context, jsonData []byte, scopes ...string) (*google.Credentials, error) {
				return nil, errors.New("unknown credential type")
			},
		}
		_, err := auth.Authenticate(context.Background())
		assert.ErrorIs(t, err, &AuthError{})
	})
}
