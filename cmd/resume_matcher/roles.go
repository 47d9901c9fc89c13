package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List job roles and their keyword weights",
	RunE:  runRoles,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	observability.NewPrinter(cmd.OutOrStdout()).PrintRoles(a.matcher.Roles())
	return nil
}
