package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gesturetalk/internal/buildinfo"
	"github.com/dmitrijs2005/gesturetalk/internal/client/app"
	"github.com/dmitrijs2005/gesturetalk/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := a.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
