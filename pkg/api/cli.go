package api

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busfares/pkg/api/stats"
	"github.com/travigo/busfares/pkg/dataaggregator/global"
	"github.com/travigo/busfares/pkg/database"
	"github.com/travigo/busfares/pkg/redis_client"
	"github.com/travigo/busfares/pkg/resolver"
	"github.com/travigo/busfares/pkg/snapshotwatch"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					refreshInterval, err := snapshotwatch.RefreshIntervalFromEnvironment()
					if err != nil {
						return err
					}

					ctx, cancel := context.WithCancel(context.Background())
					defer cancel()

					store := resolver.NewStore(database.DatasetLoader{Timeout: 2 * time.Minute})

					// Keep serving without a dataset, the planner answers 503 until an import lands
					if err := store.Reload(ctx); err != nil {
						log.Error().Err(err).Msg("Failed to load routing dataset")
					}

					watcher := &snapshotwatch.Watcher{
						Store:           store,
						Connection:      redis_client.QueueConnection,
						RefreshInterval: refreshInterval,
					}
					if err := watcher.Start(ctx); err != nil {
						return err
					}

					global.Setup(store)

					go stats.UpdateRecordsStats(ctx, store)

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
