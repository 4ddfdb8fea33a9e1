package main

import (
	"fmt"

	"entrepreneurawards/internal/db"
	"entrepreneurawards/internal/notify"
	"entrepreneurawards/internal/seed"
	"entrepreneurawards/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with industry categories and optional fake nominations",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "fake-nominations",
			Usage: "Number of fake nominations to submit and review",
			Value: 0,
		},
		&cli.BoolFlag{
			Name:  "reset",
			Usage: "Remove previously seeded fake nominations first",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := c.Context

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		logrus.Info("Seeding categories...")
		if err := seed.SeedCategories(ctx, store.NewCategoryRepository(pool)); err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		logrus.Info("Categories seeded successfully")

		count := c.Int("fake-nominations")
		if count <= 0 && !c.Bool("reset") {
			return nil
		}

		// seeded nominations never email the real administrator and never
		// upload images
		logger := logrus.StandardLogger()
		svc := newAwardsService(cfg, logger, pool, nil, notify.NewLogSender(logger))
		defer svc.Wait()

		logrus.Info("Seeding fake nominations...")
		if err := seed.SeedFakeNominations(ctx, pool, svc, count, c.Bool("reset")); err != nil {
			return fmt.Errorf("failed to seed fake nominations: %w", err)
		}

		return nil
	},
}
