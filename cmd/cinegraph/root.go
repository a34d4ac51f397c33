// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Cinegraph CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cinegraph",
		Short: "Cinegraph - a GraphQL movie catalog with token-gated fields",
		Long: `Cinegraph serves a movie catalog over GraphQL with signup/login
mutations and per-field authorization for rating data.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())

	return cmd
}
