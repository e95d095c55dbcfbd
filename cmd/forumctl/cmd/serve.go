package cmd

import (
	"forum-server/setup"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the http server",
	Args:  cobra.NoArgs,
	Run:   serve,
}

func serve(cmd *cobra.Command, args []string) {
	cfg := setup.MustLoadConfig()

	setup.ConfigureLogging(cfg)
	setup.MustInitDb(cfg)
	setup.RegisterHooks(cfg)
	setup.MustInitHandlers(cfg)

	setup.StartServer(mux.NewRouter(), cfg)
}
