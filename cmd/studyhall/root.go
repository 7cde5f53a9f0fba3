package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the Studyhall CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studyhall",
		Short: "Studyhall - an e-learning platform server",
		Long: `Studyhall is the backend for an e-learning platform: accounts and
sessions, classes with invite codes, coursework, and analytics.`,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
