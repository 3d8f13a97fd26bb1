package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitectl",
		Short: "Operations toolbox for the site backend",
	}
	cmd.AddCommand(newMigrateCmd(), newSeedCmd(), newExportLeadsCmd())
	return cmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
