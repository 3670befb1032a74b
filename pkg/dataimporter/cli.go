package dataimporter

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/travigo/busfares/pkg/dataimporter/datasets"
	"github.com/travigo/busfares/pkg/dataimporter/insertrecords"
	"github.com/travigo/busfares/pkg/dataimporter/manager"

	"github.com/travigo/busfares/pkg/database"
	"github.com/travigo/busfares/pkg/redis_client"
	"github.com/urfave/cli/v2"

	"github.com/rs/zerolog/log"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Download & convert third party datasets into CTDF",
		Subcommands: []*cli.Command{
			{
				Name:  "dataset",
				Usage: "Import a dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "repeat-every",
						Usage:    "Repeat this file import every X (eg. 30s, 15m)",
						Required: false,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Force the import of the dataset",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						log.Fatal().Err(err).Msg("Failed to connect to Redis")
					}

					datasetid := c.String("id")
					forceImport := c.Bool("force")

					repeatEvery := c.String("repeat-every")
					repeat := repeatEvery != ""
					var repeatDuration time.Duration
					if repeat {
						var err error
						repeatDuration, err = time.ParseDuration(repeatEvery)

						if err != nil {
							return err
						}
					}

					dataset, err := manager.GetDataset(datasetid)
					if err != nil {
						return err
					}

					for {
						startTime := time.Now()

						err := manager.ImportDataset(&dataset, forceImport)

						if err != nil {
							return err
						}
						if !repeat {
							break
						}

						executionDuration := time.Since(startTime)
						log.Info().Msgf("Operation took %s", executionDuration.String())

						waitTime := repeatDuration - executionDuration

						if waitTime.Seconds() > 0 {
							time.Sleep(waitTime)
						}
					}

					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List the registered datasets",
				Action: func(c *cli.Context) error {
					registered, err := manager.GetRegisteredDataSets()
					if err != nil {
						return err
					}

					writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(writer, "IDENTIFIER\tFORMAT\tPROVIDER\tREFRESH\tSOURCE")
					for _, dataset := range registered {
						fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
							dataset.Identifier, dataset.Format, dataset.Provider.Name, dataset.RefreshInterval, dataset.Source)
					}

					return writer.Flush()
				},
			},
			{
				Name:  "insert-records",
				Usage: "Apply the hand maintained record corrections in data/insert-records",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					return insertrecords.Insert()
				},
			},
			{
				Name:  "multi-arrivals",
				Usage: "Keep importing every arrivals dataset that has a refresh interval",
				Flags: []cli.Flag{},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						log.Fatal().Err(err).Msg("Failed to connect to Redis")
					}

					allDatasets, err := manager.GetRegisteredDataSets()
					if err != nil {
						return err
					}

					for _, dataset := range allDatasets {
						if !dataset.SupportedObjects.Arrivals {
							continue
						}

						repeatDuration, err := dataset.GetRefreshInterval()
						if err != nil {
							return fmt.Errorf("dataset %s refresh interval: %w", dataset.Identifier, err)
						}
						if repeatDuration <= 0 {
							continue
						}

						log.Info().Str("interval", repeatDuration.String()).Str("id", dataset.Identifier).Msg("Loaded arrivals dataset")

						go func(dataset datasets.DataSet) {
							for {
								startTime := time.Now()

								// Every refresh replaces what the feed said last time
								err := manager.ImportDataset(&dataset, true)

								if err != nil {
									log.Error().Err(err).Str("id", dataset.Identifier).Msg("Failed to import dataset")
									time.Sleep(1 * time.Minute)
								}

								executionDuration := time.Since(startTime)
								log.Info().Str("id", dataset.Identifier).Msgf("Operation took %s", executionDuration.String())

								waitTime := repeatDuration - executionDuration

								if waitTime.Seconds() > 0 {
									time.Sleep(waitTime)
								}
							}
						}(dataset)
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					return nil
				},
			},
		},
	}
}
