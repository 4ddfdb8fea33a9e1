package main

import (
	"fmt"

	"entrepreneurawards/internal/awards"
	"entrepreneurawards/internal/db"
	"entrepreneurawards/internal/notify"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var nominationsCommand = &cli.Command{
	Name:  "nominations",
	Usage: "Print nominations with their status counts",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "status",
			Aliases: []string{"s"},
			Usage:   "pending, approved, rejected or all",
			Value:   awards.StatusFilterAll,
		},
		&cli.StringFlag{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "Case-insensitive search over names and business details",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		pool, err := db.Connect(c.Context, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logger := logrus.StandardLogger()
		svc := newAwardsService(cfg, logger, pool, nil, notify.NewLogSender(logger))

		nominations, counts, err := svc.FilteredNominations(c.Context, awards.NominationFilter{
			Status: c.String("status"),
			Query:  c.String("query"),
		})
		if err != nil {
			return err
		}

		printer := pp.New()
		printer.SetExportedOnly(true)
		printer.Println(counts)
		for _, n := range nominations {
			printer.Println(n)
		}

		return nil
	},
}
