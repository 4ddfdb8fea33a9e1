package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"

	"entrepreneurawards/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func loadConfig(cCtx *cli.Context) (*types.Config, error) {
	// variables already set in the environment win over the file
	if err := godotenv.Load(cCtx.String("env-file")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	return c, nil
}

// ensureCookieKeys fills missing cookie keys with random ones. Sessions
// then do not survive a restart, which is only acceptable in development.
func ensureCookieKeys(c *types.Config, logger *logrus.Logger) error {
	if c.CookieHashKey != "" {
		return nil
	}

	if c.Environment != "development" {
		return fmt.Errorf("set COOKIE_HASH_KEY")
	}

	logger.Warn("COOKIE_HASH_KEY is not set; generating throwaway cookie keys")
	c.CookieHashKey = base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
	if c.CookieBlockKey == "" {
		c.CookieBlockKey = base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
	}

	return nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}
