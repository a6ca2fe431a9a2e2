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
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gstkit/gstrecon/api"
)

// serveHTTP starts the plain HTTP server hosting the reconciliation API.
func serveHTTP(handler http.Handler, port string) error {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting server on %s\n", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
	return nil
}

// serverCommands defines the "start" command, which starts the HTTP API for
// running reconciliations and downloading input templates.
func serverCommands(r *reconInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "start gstrecon server",
		Run: func(cmd *cobra.Command, args []string) {
			router := api.NewAPI(r.recon).Router()

			if err := serveHTTP(router, r.cnf.Server.Port); err != nil {
				log.Fatalf("Error starting server: %v", err)
			}
		},
	}
	return cmd
}
