package cmd

import (
	"forum-server/db"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	Run:   migrate,
}

func migrate(cmd *cobra.Command, args []string) {
	cfg := mustConnect()

	startSpinner("Running migrations...")
	err := db.MigrationsUp(cfg.Migrations.Dir)
	stopSpinner()

	if err != nil {
		exitWithError("Error running migrations: %v", err)
	}

	success("Migrations are up to date")
}
