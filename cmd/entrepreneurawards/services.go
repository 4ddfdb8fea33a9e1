package main

import (
	"fmt"
	"strings"

	"entrepreneurawards/internal/awards"
	"entrepreneurawards/internal/notify"
	"entrepreneurawards/internal/storage"
	"entrepreneurawards/internal/store"
	"entrepreneurawards/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func newObjectStorage(config *types.Config, awsConfig aws.Config) (awards.ObjectStorage, error) {
	switch strings.ToLower(config.StorageBackend) {
	case "supabase":
		if config.SupabaseProjectID == "" || config.SupabaseAPIKey == "" {
			return nil, fmt.Errorf("set SUPABASE_PROJECT_ID and SUPABASE_API_KEY for the supabase storage backend")
		}
		return storage.NewSupabaseStorage(config.SupabaseProjectID, config.SupabaseAPIKey, config.SupabaseStorageBucket), nil
	case "s3":
		if config.S3BucketName == "" {
			return nil, fmt.Errorf("set S3_BUCKET_NAME for the s3 storage backend")
		}
		return storage.NewS3Storage(s3.NewFromConfig(awsConfig), config.S3BucketName, config.S3PublicBaseURL), nil
	}

	return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", config.StorageBackend)
}

func newNotifier(config *types.Config, awsConfig aws.Config, logger *logrus.Logger) (awards.Notifier, error) {
	switch strings.ToLower(config.NotifyBackend) {
	case "ses":
		if config.AdminEmail == "" {
			return nil, fmt.Errorf("set ADMIN_EMAIL for the ses notify backend")
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsConfig), config.NotifyFromEmail, config.AdminEmail, config.PublicBaseURL), nil
	case "function":
		if config.NotifyFunctionURL == "" {
			return nil, fmt.Errorf("set NOTIFY_FUNCTION_URL for the function notify backend")
		}
		return notify.NewFunctionSender(config.NotifyFunctionURL, config.NotifyFunctionKey), nil
	case "", "none", "log":
		return notify.NewLogSender(logger), nil
	}

	return nil, fmt.Errorf("unknown NOTIFY_BACKEND %q", config.NotifyBackend)
}

func newAwardsService(
	config *types.Config,
	logger *logrus.Logger,
	pool *pgxpool.Pool,
	objectStorage awards.ObjectStorage,
	notifier awards.Notifier,
) *awards.Service {
	return awards.New(
		logger,
		store.NewNominationRepository(pool),
		store.NewEntrepreneurRepository(pool),
		store.NewCategoryRepository(pool),
		objectStorage,
		notifier,
		awards.Options{
			AllowResetFromApproved: config.AllowResetFromApproved,
			DirectoryPageSize:      config.DirectoryPageSize,
			MaxUploadBytes:         config.MaxUploadBytes,
		},
	)
}
