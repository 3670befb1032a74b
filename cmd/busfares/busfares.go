package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/api"
	"github.com/travigo/busfares/pkg/dataimporter"
	"github.com/travigo/busfares/pkg/planner"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// Local development settings, real environment variables take precedence
	_ = godotenv.Load()

	if os.Getenv("BUSFARES_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("BUSFARES_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "busfares",
		Description: "Direct bus services & fares between two stops",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			dataimporter.RegisterCLI(),
			planner.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
