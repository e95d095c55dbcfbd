package main

import (
	"forum-server/setup"

	"github.com/gorilla/mux"
)

func main() {
	cfg := setup.MustLoadConfig()

	setup.ConfigureLogging(cfg)
	setup.MustInitDb(cfg)
	setup.RegisterHooks(cfg)
	setup.MustInitHandlers(cfg)

	r := mux.NewRouter()
	setup.StartServer(r, cfg)
}
