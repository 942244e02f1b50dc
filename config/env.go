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
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/pelicanplatform/transferctl/param"
)

// Project variables understood by the Google Cloud SDKs, in order of preference.
var legacyProjectEnvs = []string{"GCLOUD_PROJECT", "GOOGLE_CLOUD_PROJECT"}

// bindLegacyEnv handles environment variables that do not use the TRANSFERCTL
// prefix.  They are registered as defaults so that the prefixed variable, the
// config file and the command line all take precedence.
func bindLegacyEnv(v *viper.Viper) {
	for _, env := range legacyProjectEnvs {
		if val, isSet := os.LookupEnv(env); isSet && val != "" {
			log.Debugf("Using project %q from %s", val, env)
			v.SetDefault(param.Transfer_ProjectId.GetName(), val)
			break
		}
	}
}
