/*
Copyright 2025 GSTRecon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gstkit/gstrecon"
	"github.com/gstkit/gstrecon/config"
)

// GSTRecon represents the CLI application, encapsulating the root Cobra command.
type GSTRecon struct {
	cmd *cobra.Command
}

// reconInstance holds the reconciliation service and its configuration so
// subcommands can share one initialized instance.
type reconInstance struct {
	recon *gstrecon.Recon
	cnf   *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and initializes the reconciliation service
// before any subcommand executes.
func preRun(app *reconInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("gstrecon.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		app.recon = gstrecon.NewRecon()
		app.cnf = cnf

		return nil
	}
}

// NewCLI creates the command-line interface for the GSTRecon application.
func NewCLI() *GSTRecon {
	var configFile string
	r := &reconInstance{}

	var rootCmd = &cobra.Command{
		Use:   "gstrecon",
		Short: "GSTR-2B purchase invoice reconciliation",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./gstrecon.json", "Configuration file for gstrecon")

	rootCmd.PersistentPreRunE = preRun(r)

	rootCmd.AddCommand(serverCommands(r))
	rootCmd.AddCommand(reconcileCommands(r))
	rootCmd.AddCommand(templateCommands(r))

	return &GSTRecon{cmd: rootCmd}
}

// executeCLI runs the root command and handles any errors encountered during execution.
func (g GSTRecon) executeCLI() {
	if err := g.cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func main() {
	defer recoverPanic()
	cli := NewCLI()
	cli.executeCLI()
}
