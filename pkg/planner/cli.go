package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kr/pretty"
	"github.com/travigo/busfares/pkg/ctdf"
	"github.com/travigo/busfares/pkg/dataaggregator"
	"github.com/travigo/busfares/pkg/dataaggregator/query"
	"github.com/travigo/busfares/pkg/dataaggregator/source/directtrips"
	"github.com/travigo/busfares/pkg/database"
	"github.com/travigo/busfares/pkg/resolver"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "planner",
		Usage: "Query direct trips from the command line",
		Subcommands: []*cli.Command{
			{
				Name:  "query",
				Usage: "List the direct services between two stops with their fares",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "bus stop code to board at",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "bus stop code to alight at",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "rider",
						Value: string(ctdf.RiderTypeAdult),
						Usage: "adult, senior, student or workfare",
					},
					&cli.StringFlag{
						Name:  "pay",
						Value: string(ctdf.PayModeCard),
						Usage: "card or cash",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "dump every candidate field",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					store := resolver.NewStore(database.DatasetLoader{Timeout: 2 * time.Minute})
					if err := store.Reload(context.Background()); err != nil {
						return err
					}

					aggregator := &dataaggregator.Aggregator{}
					aggregator.RegisterSource(directtrips.Source{Store: store})

					results, err := dataaggregator.LookupWith[*ctdf.DirectTripResults](aggregator, query.DirectTrips{
						OriginStop:      c.String("from"),
						DestinationStop: c.String("to"),
						RiderType:       c.String("rider"),
						PayMode:         c.String("pay"),
					})
					if err != nil {
						return err
					}

					if c.Bool("verbose") {
						pretty.Println(results)
						return nil
					}

					return PrintResults(os.Stdout, results)
				},
			},
		},
	}
}

var ErrNoResults = errors.New("no direct services between these stops")

func PrintResults(out io.Writer, results *ctdf.DirectTripResults) error {
	if len(results.Candidates) == 0 {
		return ErrNoResults
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "SERVICE\tDIR\tOPERATOR\tHOPS\tKM\tMINS\tFARE\tFARE SOURCE")

	for _, candidate := range results.Candidates {
		fare := "-"
		if candidate.Fare != nil {
			fare = *candidate.Fare
		}

		fmt.Fprintf(writer, "%s\t%d\t%s\t%d\t%.2f\t%d\t%s\t%s\n",
			candidate.ServiceNo,
			candidate.Direction,
			candidate.Operator,
			candidate.Hops,
			candidate.TravelKM,
			candidate.EstMinutes,
			fare,
			candidate.FareSource,
		)
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	summary := results.Summary
	cheapest := "-"
	if summary.CheapestFare != nil {
		cheapest = *summary.CheapestFare
	}
	fastest := "-"
	if summary.FastestETA != nil {
		fastest = fmt.Sprintf("%d min", *summary.FastestETA)
	}

	_, err := fmt.Fprintf(out, "\n%d direct services by %d operators, cheapest %s, fastest %s\n",
		summary.DirectServices, summary.Operators, cheapest, fastest)

	return err
}
