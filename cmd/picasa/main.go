package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/picasa/cmd/picasa/internal/configuration"
	"github.com/adampresley/picasa/cmd/picasa/internal/source"
	"github.com/adampresley/picasa/pkg/services"
	"github.com/joho/godotenv"
)

var (
	Version string = "development"
	appName string = "picasa"

	config configuration.Config

	/* Services */
	connection   services.Connection
	fileService  services.FileService
	imageService services.ImageService
	photoService services.PhotoServicer
	resolver     source.Resolver
	session      services.Session
)

func main() {
	var (
		err error
	)

	// A missing .env file is fine; the environment and flags still apply.
	_ = godotenv.Load()

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("baseURL", config.BaseURL),
		slog.String("userID", config.UserID),
		slog.String("action", config.Action),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	/*
	 * Setup services
	 */
	session = services.NewTokenSession(config.UserID, config.AccessToken)

	connection = services.NewConnection(services.ConnectionConfig{
		BaseURL: config.BaseURL,
		Timeout: time.Duration(config.Timeout) * time.Second,
	})

	fileService = services.NewFileService(services.FileServiceConfig{})
	imageService = services.NewImageService()

	photoService = services.NewPhotoService(services.PhotoServiceConfig{
		Connection:  connection,
		FileService: fileService,
		Renderer:    services.NewTemplateService(),
		Session:     session,
	})

	resolver = source.NewResolver(source.ResolverConfig{
		FileService:  fileService,
		ImageService: imageService,
		MaxSize:      uint(max(config.MaxSize, 0)),
		NewFetcher:   newS3Fetcher,
	})

	if err = runAction(ctx, os.Stdout, config, photoService, resolver); err != nil {
		slog.Error("action failed", "action", config.Action, "error", err)
		stop()
		os.Exit(1)
	}
}

func newS3Fetcher() (source.ObjectFetcher, error) {
	var (
		err      error
		s3Client s3.S3Client
	)

	awsConfig := &awsconfig.Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	}

	if err = awsConfig.Load(); err != nil {
		return nil, err
	}

	if s3Client, err = s3.NewClient(awsConfig); err != nil {
		return nil, err
	}

	return source.NewS3ObjectFetcher(s3Client), nil
}
