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

package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pelicanplatform/transferctl/param"
)

// Test that transferctl notifies users about unrecognized configuration keys.
func TestBadConfigKeys(t *testing.T) {
	t.Cleanup(ResetConfig)

	setupFunc := func() *test.Hook {
		ResetConfig()
		logrus.SetLevel(logrus.InfoLevel)
		require.NoError(t, param.Set(param.ConfigDir.GetName(), t.TempDir()))
		return test.NewLocal(logrus.StandardLogger())
	}

	t.Run("testRecognizedViperKey", func(t *testing.T) {
		hook := setupFunc()
		require.NoError(t, param.Set("Transfer.ProjectId", "my-project"))
		require.NoError(t, InitConfigInternal())

		require.Nil(t, hook.LastEntry())
	})

	t.Run("testRecognizedEnvKey", func(t *testing.T) {
		hook := setupFunc()
		t.Setenv("TRANSFERCTL_TRANSFER_PROJECTID", "my-project")
		require.NoError(t, InitConfigInternal())

		require.Nil(t, hook.LastEntry())
		assert.Equal(t, "my-project", param.Transfer_ProjectId.GetString())
	})

	t.Run("testBadViperKey", func(t *testing.T) {
		hook := setupFunc()
		require.NoError(t, param.Set("Transfer.Bad.Key", "value"))
		require.NoError(t, InitConfigInternal())

		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		assert.Contains(t, hook.LastEntry().Message, "Unknown configuration keys found")
		assert.Contains(t, hook.LastEntry().Message, "transfer.bad.key")
	})

	t.Run("testBadEnvKey", func(t *testing.T) {
		hook := setupFunc()
		t.Setenv("TRANSFERCTL_TRANSFER_BAD_KEY", "value")
		require.NoError(t, InitConfigInternal())

		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		assert.Contains(t, hook.LastEntry().Message, "transfer.bad.key")
	})
}
