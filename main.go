package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/envatex/envatex-api/config"
	"github.com/envatex/envatex-api/internal/adminapi"
	"github.com/envatex/envatex-api/internal/app"
	"github.com/envatex/envatex-api/internal/webserver"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "/etc/envatex.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
)

var gitCommit string

func printVersion() {
	fmt.Printf("envatex-api (%s)\n", gitCommit)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	ws := webserver.Init(application)
	adminapi.RegisterRoutes()

	if err := ws.Listen(); err != nil {
		zap.S().Fatalf("web server stopped: %v", err)
	}
}
