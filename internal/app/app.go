package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cradoe/banking-api/internal/cache"
	"github.com/cradoe/banking-api/internal/config"
	"github.com/cradoe/banking-api/internal/errHandler"
	"github.com/cradoe/banking-api/internal/file"
	"github.com/cradoe/banking-api/internal/helper"
	"github.com/cradoe/banking-api/internal/repository"
	seeders "github.com/cradoe/banking-api/internal/seeder"
	"github.com/cradoe/banking-api/internal/security"
	"github.com/cradoe/banking-api/internal/service"
	"github.com/cradoe/banking-api/internal/smtp"
	"github.com/cradoe/banking-api/internal/stream"
	"github.com/joho/godotenv"
)

// Essential services and resources are exposed to the application
// this makes it possible for methods to have access to these items and when they need them
type Application struct {
	Config       config.Config
	DB           repository.Database
	Logger       *slog.Logger
	Mailer       *smtp.Mailer
	WG           sync.WaitGroup
	errorHandler *errHandler.ErrorRepository
	Helper       *helper.HelperRepository
	Kafka        *stream.KafkaStream
	Cache        *cache.Cache
	Service      *service.Service
}

func NewApplication(logger *slog.Logger) (*Application, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", "error", err)
	}

	cfg := config.Load()

	passwords, err := security.NewPasswordHasher(security.PasswordConfig{Cost: cfg.Password.HashCost})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	tokens, err := security.NewTokenIssuer(security.TokenConfig{
		SecretKey: cfg.Jwt.SecretKey,
		Issuer:    cfg.BaseURL,
		Expiry:    cfg.Jwt.Expiry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	blobs, err := newBlobStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document storage: %w", err)
	}

	db, err := repository.New(cfg.Db.Dsn, cfg.Db.Automigrate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	mailer, err := smtp.NewMailer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.From)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	kafkaStream, err := stream.New(cfg.KafkaServers)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize kafka producer: %w", err)
	}

	app := &Application{
		Config: cfg,
		DB:     db,
		Logger: logger,
		Mailer: mailer,
		Kafka:  kafkaStream,
		Cache:  cache.New(cfg.RedisServer, 0),
	}

	app.Helper = helper.New(cfg.BaseURL, &app.WG, logger)
	app.errorHandler = errHandler.New(cfg.Notifications.Email, mailer, logger, app.Helper)

	app.Service = service.New(service.Dependencies{
		Accounts:    db.Account(),
		Activity:    db.Activity(),
		Passwords:   passwords,
		Tokens:      tokens,
		Identifiers: security.NewIdentifierHasher(cfg.Kyc.HashKey),
		Blobs:       blobs,
		Events:      kafkaStream,
		Background:  app.Helper,
		Logger:      logger,
		Config:      service.Config{PanSurnameCheck: cfg.Kyc.PanSurnameCheck},
	})

	seeder := seeders.New(db.Account(), passwords, logger)
	err = seeder.Run(seeders.AdminAccount{
		Email:       cfg.Admin.Email,
		Password:    cfg.Admin.Password,
		PhoneNumber: cfg.Admin.PhoneNumber,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	return app, nil
}

func newBlobStore(cfg config.Config) (service.BlobStore, error) {
	switch cfg.Storage.Driver {
	case "cloudinary":
		return file.New(cfg.FileUploader.CloudName, cfg.FileUploader.ApiKey, cfg.FileUploader.ApiSecret)
	case "local":
		return file.NewLocalStore(cfg.Storage.LocalDir)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Close waits for background tasks before releasing connections they may still use.
func (app *Application) Close() {
	app.WG.Wait()

	app.Kafka.Close()

	if err := app.Cache.Close(); err != nil {
		app.Logger.Error("failed to close redis client", "error", err)
	}

	if err := app.DB.Close(); err != nil {
		app.Logger.Error("failed to close database", "error", err)
	}
}
