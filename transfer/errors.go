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
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
)

type (
	// ValidationError is returned when a request is rejected locally, before
	// any network traffic.
	ValidationError struct {
		Field string
		Msg   string
	}

	// AuthError is returned when no usable credentials could be obtained.
	AuthError struct {
		Err error
	}

	// RemoteError is returned when the Storage Transfer Service could not be
	// reached or answered with a non-success status.  StatusCode is zero when
	// no HTTP response was received.
	RemoteError struct {
		Method     string
		StatusCode int
		Err        error
	}
)

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "failed to obtain credentials"
	}
	return "failed to obtain credentials: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *AuthError) Is(target error) bool {
	_, ok := target.(*AuthError)
	return ok
}

// newRemoteError wraps a failed API call, lifting the HTTP status out of a
// *googleapi.Error when there is one.
func newRemoteError(method string, err error) *RemoteError {
	remoteErr := &RemoteError{Method: method, Err: err}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		remoteErr.StatusCode = apiErr.Code
	}
	return remoteErr
}

func (e *RemoteError) Error() string {
	msg := e.Method + " failed"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Is(target error) bool {
	_, ok := target.(*RemoteError)
	return ok
}

// NotFound reports whether the service answered 404.
func (e *RemoteError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
