package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entrepreneurawards/internal/auth"
	"entrepreneurawards/internal/db"
	"entrepreneurawards/internal/server"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Start the HTTP server",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "migrate",
			Usage: "Apply the database schema before serving",
		},
	},
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	if err := ensureCookieKeys(config, logger); err != nil {
		return err
	}

	if config.CognitoClientID == "" || config.CognitoIssuerURL == "" {
		return fmt.Errorf("set COGNITO_CLIENT_ID and COGNITO_ISSUER_URL")
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cCtx.Bool("migrate") {
		if err := db.Migrate(ctx, pool, config.DatabaseSchema); err != nil {
			return err
		}
	}

	objectStorage, err := newObjectStorage(config, awsConfig)
	if err != nil {
		return err
	}

	notifier, err := newNotifier(config, awsConfig, logger)
	if err != nil {
		return err
	}

	svc := newAwardsService(config, logger, pool, objectStorage, notifier)

	jwkCache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initialize jwk cache: %w", err)
	}

	jwksURL := auth.JWKSURL(config.CognitoIssuerURL)
	if err := jwkCache.Register(ctx, jwksURL); err != nil {
		return fmt.Errorf("failed to register cognito jwks with cache: %w", err)
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsConfig)

	srv, err := server.New(
		config,
		logger,
		svc,
		auth.NewAuthenticator(cognitoClient, config.CognitoClientID),
		auth.NewVerifier(jwkCache, jwksURL, config.CognitoAdminGroup),
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = srv.Stop(shutdownCtx)

	// let in-flight admin notifications finish
	svc.Wait()

	return err
}
