package config

import (
	"time"

	"github.com/cradoe/banking-api/internal/env"
)

type Config struct {
	BaseURL  string
	HttpPort int
	Db       struct {
		Dsn         string
		Automigrate bool
	}
	Jwt struct {
		SecretKey string
		Expiry    time.Duration
	}
	Password struct {
		HashCost int
	}
	Kyc struct {
		HashKey         string
		PanSurnameCheck bool
		MaxUploadBytes  int64
	}
	Storage struct {
		Driver   string
		LocalDir string
	}
	FileUploader struct {
		CloudName string
		ApiKey    string
		ApiSecret string
	}
	RedisServer    string
	LoginRateLimit int
	KafkaServers   string
	Notifications  struct {
		Email string
	}
	Smtp struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Admin struct {
		Email       string
		Password    string
		PhoneNumber string
	}
}

// Load reads configuration from the environment.
// Default values are for development only, make sure no production-level value is exposed here.
func Load() Config {
	var cfg Config

	cfg.BaseURL = env.GetString("BASE_URL", "http://localhost:4444")
	cfg.HttpPort = env.GetInt("HTTP_PORT", 4444)

	cfg.Db.Dsn = env.GetString("DB_DSN", "user:pass@localhost:5432/db?sslmode=disable")
	cfg.Db.Automigrate = env.GetBool("DB_AUTOMIGRATE", true)

	cfg.Jwt.SecretKey = env.GetString("JWT_SECRET_KEY", "ajf5nx3qmp6zquevllxocxqvyz42ypuo")
	cfg.Jwt.Expiry = env.GetDuration("JWT_EXPIRY", 30*time.Minute)

	cfg.Password.HashCost = env.GetInt("PASSWORD_HASH_COST", 12)

	cfg.Kyc.HashKey = env.GetString("KYC_HASH_KEY", "r8wq2lmzt5xk0v7hd3pn9cya6ejg4bfs")
	cfg.Kyc.PanSurnameCheck = env.GetBool("KYC_PAN_SURNAME_CHECK", false)
	cfg.Kyc.MaxUploadBytes = int64(env.GetInt("KYC_MAX_UPLOAD_BYTES", 5<<20))

	cfg.Storage.Driver = env.GetString("STORAGE_DRIVER", "local")
	cfg.Storage.LocalDir = env.GetString("STORAGE_LOCAL_DIR", "uploads")

	cfg.FileUploader.CloudName = env.GetString("CLOUDINARY_CLOUD_NAME", "")
	cfg.FileUploader.ApiKey = env.GetString("CLOUDINARY_API_KEY", "")
	cfg.FileUploader.ApiSecret = env.GetString("CLOUDINARY_API_SECRET", "")

	cfg.RedisServer = env.GetString("REDIS_SERVER", "localhost:6379")
	cfg.LoginRateLimit = env.GetInt("LOGIN_RATE_LIMIT", 20)

	cfg.KafkaServers = env.GetString("KAFKA_SERVERS", "localhost:9092")

	// server errors won't be sent via email if NOTIFICATIONS_EMAIL is not set
	cfg.Notifications.Email = env.GetString("NOTIFICATIONS_EMAIL", "")

	cfg.Smtp.Host = env.GetString("SMTP_HOST", "example.smtp.host")
	cfg.Smtp.Port = env.GetInt("SMTP_PORT", 25)
	cfg.Smtp.Username = env.GetString("SMTP_USERNAME", "example_username")
	cfg.Smtp.Password = env.GetString("SMTP_PASSWORD", "pa55word")
	cfg.Smtp.From = env.GetString("SMTP_FROM", "Example Name <no_reply@example.org>")

	// the bootstrap admin is only seeded when both values are set
	cfg.Admin.Email = env.GetString("ADMIN_EMAIL", "")
	cfg.Admin.Password = env.GetString("ADMIN_PASSWORD", "")
	cfg.Admin.PhoneNumber = env.GetString("ADMIN_PHONE", "9000000000")

	return cfg
}
