package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/phishshield/internal/buildinfo"
	"github.com/dmitrijs2005/phishshield/internal/client/config"
	"github.com/dmitrijs2005/phishshield/internal/mockapi"
	"github.com/spf13/pflag"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	fs := pflag.NewFlagSet("phishshield-mockapi", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.LoadConfig(fs)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := mockapi.NewApp(cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
