package main

import (
	"log"
	"os"

	echoweb "github.com/catiga/languagebridge/apps/web/echo"
	"github.com/catiga/languagebridge/core"
	logsvc "github.com/catiga/languagebridge/services/logger"
	"github.com/catiga/languagebridge/spwapi"
)

func main() {
	std := log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lshortfile)

	// set up services
	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}
	api := spwapi.NewClient(core.Conf.API)

	// start web server
	app := echoweb.NewServer(
		&echoweb.Options{
			Addr:   core.Conf.Server.Addr(),
			API:    api,
			Logger: logger,
		},
	)
	app.Start()
}
