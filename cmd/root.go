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
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pelicanplatform/transferctl/config"
	"github.com/pelicanplatform/transferctl/logging"
	"github.com/pelicanplatform/transferctl/metrics"
	"github.com/pelicanplatform/transferctl/param"
)

var (
	cfgFile    string
	outputJSON bool
	outputYAML bool

	rootCmd = &cobra.Command{
		Use:   "transferctl",
		Short: "Create and inspect Cloud Storage transfer jobs",
		Long: `transferctl submits one-shot jobs to the Google Cloud Storage Transfer
Service and reports the state of their transfer operations.

Credentials come from the application default credential chain; the
project is read from --project, Transfer.ProjectId or GCLOUD_PROJECT.`,
		// Anything that is not a known command prints the usage text and
		// exits cleanly.
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command; an interrupt cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cobra only hands the root context to a subcommand that has none, so a
	// second run in the same process would inherit the cancelled one.
	setCommandContext(rootCmd, ctx)

	exeErr := rootCmd.ExecuteContext(ctx)
	if exeErr != nil {
		// Make sure buffered lines reach the user even if the command failed
		// before logging was configured.
		_ = logging.FlushLogs(false)
		log.Errorln("Fatal error occurred:", exeErr)
	}
	writeMetricsFile()
	return exeErr
}

func setCommandContext(cmd *cobra.Command, ctx context.Context) {
	for _, child := range cmd.Commands() {
		child.SetContext(ctx)
		setCommandContext(child, ctx)
	}
}

func writeMetricsFile() {
	path := param.Monitoring_MetricsFile.GetString()
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		log.Warningln("Failed to write metrics file:", err)
	}
}

// bindRootFlags binds the persistent flags to their viper keys.  viper.Reset
// drops these bindings, so tests call it again after resetting.
func bindRootFlags() error {
	flags := rootCmd.PersistentFlags()
	bindings := map[string]string{
		"config":                               "config",
		param.Debug.GetName():                  "debug",
		param.Logging_LogLocation.GetName():    "log",
		param.Transfer_ProjectId.GetName():     "project",
		param.Transfer_Endpoint.GetName():      "endpoint",
		param.Monitoring_MetricsFile.GetName(): "metrics-file",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	cobra.OnInitialize(config.InitConfig)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/transferctl/transferctl.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logs")
	rootCmd.PersistentFlags().StringP("log", "l", "", "Specified log output file")
	rootCmd.PersistentFlags().StringP("project", "P", "", "Google Cloud project that owns the transfer jobs")
	rootCmd.PersistentFlags().String("endpoint", "", "Storage Transfer Service endpoint")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write API request metrics in Prometheus text format to this file on exit")

	// Register the version flag here just so --help will show this flag
	// Actual checking is executed at main.go
	rootCmd.PersistentFlags().BoolP("version", "", false, "Print the version and exit")

	rootCmd.PersistentFlags().BoolVarP(&outputJSON, "json", "", false, "output results in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&outputYAML, "yaml", "", false, "output results in YAML format")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	if err := bindRootFlags(); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(statusCmd)
}
