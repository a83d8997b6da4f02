package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/systech-labs/deskflow/internal/interfaces/cli/migrate"
	"github.com/systech-labs/deskflow/internal/interfaces/cli/seed"
	"github.com/systech-labs/deskflow/internal/interfaces/cli/server"
	"github.com/systech-labs/deskflow/internal/interfaces/cli/token"
	"github.com/systech-labs/deskflow/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "deskflow",
		Short:   "Deskflow - ticket, dev task and sprint lifecycle engine",
		Long:    `Deskflow runs the support ticket, dev task and sprint API together with its migration, seeding and token tools.`,
		Version: version.Current,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
