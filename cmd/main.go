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
	"os"

	"github.com/pelicanplatform/transferctl/config"
	"github.com/pelicanplatform/transferctl/logging"
)

func main() {
	os.Exit(run(os.Args))
}

// run returns the process exit code; deferred cleanup happens before main
// exits.
func run(args []string) int {
	logging.SetupLogBuffering()
	defer logging.CloseLogger()

	if err := handleCLI(args); err != nil {
		return 1
	}
	return 0
}

func handleCLI(args []string) error {
	// The version flag is captured manually so it works after any command,
	// defined or not; cobra has no graceful way to do that.
	if len(args) > 1 && args[len(args)-1] == "--version" {
		fmt.Println("Version:", config.GetVersion())
		fmt.Println("Build Date:", config.GetBuiltDate())
		fmt.Println("Build Commit:", config.GetBuiltCommit())
		fmt.Println("Built By:", config.GetBuiltBy())
		return nil
	}
	rootCmd.SetArgs(args[1:])
	return Execute()
}
