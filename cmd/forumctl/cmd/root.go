package cmd

import (
	"fmt"
	"os"

	"forum-server/config"
	"forum-server/db"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   `forumctl [command] [flags]`,
	Short: "Administer a forum-server deployment",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		exitWithError("Error executing command: %v", err)
	}
}

func exitWithError(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.New(color.Bold, color.FgHiRed).Sprint("🚨 ")+fmt.Sprintf(format, args...))
	os.Exit(1)
}

// mustConnect loads config and opens the database without running migrations.
func mustConnect() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError("Error loading config: %v", err)
	}

	err = db.Connect(cfg)
	if err != nil {
		exitWithError("Error connecting to database: %v", err)
	}

	return cfg
}

func success(format string, args ...interface{}) {
	fmt.Println(color.New(color.Bold, color.FgHiGreen).Sprint("✅ ") + fmt.Sprintf(format, args...))
}
