// AngelaMos | 2026
// config.go

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Mail      MailConfig      `koanf:"mail"`
	Captcha   CaptchaConfig   `koanf:"captcha"`
	Storage   StorageConfig   `koanf:"storage"`
	Queue     QueueConfig     `koanf:"queue"`
	Quiz      QuizConfig      `koanf:"quiz"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	// PublicBaseURL is the frontend origin used in e-mailed links.
	PublicBaseURL string `koanf:"public_base_url"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
	KeyPrefix    string `koanf:"key_prefix"`
}

type JWTConfig struct {
	PrivateKeyPath     string        `koanf:"private_key_path"`
	PublicKeyPath      string        `koanf:"public_key_path"`
	AccessTokenExpire  time.Duration `koanf:"access_token_expire"`
	RefreshTokenExpire time.Duration `koanf:"refresh_token_expire"`
	ResetTokenExpire   time.Duration `koanf:"reset_token_expire"`
	Issuer             string        `koanf:"issuer"`
	Audience           string        `koanf:"audience"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

type MailConfig struct {
	APIKey          string        `koanf:"api_key"`
	BaseURL         string        `koanf:"base_url"`
	SenderEmail     string        `koanf:"sender_email"`
	SenderName      string        `koanf:"sender_name"`
	UserTemplateID  int64         `koanf:"user_template_id"`
	AdminTemplateID int64         `koanf:"admin_template_id"`
	AdminEmail      string        `koanf:"admin_email"`
	Timeout         time.Duration `koanf:"timeout"`
}

type CaptchaConfig struct {
	Enabled   bool          `koanf:"enabled"`
	SecretKey string        `koanf:"secret_key"`
	VerifyURL string        `koanf:"verify_url"`
	Timeout   time.Duration `koanf:"timeout"`
}

type StorageConfig struct {
	// Backend is one of "none", "minio" or "gcs".
	Backend       string      `koanf:"backend"`
	MaxUploadSize int64       `koanf:"max_upload_size"`
	Minio         MinioConfig `koanf:"minio"`
	GCS           GCSConfig   `koanf:"gcs"`
}

type MinioConfig struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Bucket    string `koanf:"bucket"`
	UseSSL    bool   `koanf:"use_ssl"`
}

type GCSConfig struct {
	Bucket          string `koanf:"bucket"`
	ProjectID       string `koanf:"project_id"`
	CredentialsFile string `koanf:"credentials_file"`
}

type QueueConfig struct {
	// Backend is one of "none", "rabbitmq" or "pubsub".
	Backend             string         `koanf:"backend"`
	NotificationChannel string         `koanf:"notification_channel"`
	RabbitMQ            RabbitMQConfig `koanf:"rabbitmq"`
	PubSub              PubSubConfig   `koanf:"pubsub"`
}

type RabbitMQConfig struct {
	URL             string `koanf:"url"`
	PrefetchCount   int    `koanf:"prefetch_count"`
	QueueDurable    bool   `koanf:"queue_durable"`
	QueueAutoDelete bool   `koanf:"queue_auto_delete"`
}

type PubSubConfig struct {
	ProjectID          string `koanf:"project_id"`
	CredentialsFile    string `koanf:"credentials_file"`
	SubscriptionSuffix string `koanf:"subscription_suffix"`
}

type QuizConfig struct {
	// SessionTTL bounds how long answered questions are remembered for a
	// play session.
	SessionTTL time.Duration `koanf:"session_ttl"`
	// LeaderboardLimit caps the leaderboard rows; 0 lists every user.
	LeaderboardLimit int `koanf:"leaderboard_limit"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Load builds a Config from defaults, an optional YAML file, an optional
// .env file and the process environment, in increasing precedence.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads .env (or DOTENV_PATH) into the environment without
// overriding variables that are already set.
func loadDotEnv() error {
	path := os.Getenv("DOTENV_PATH")
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return godotenv.Load(path)
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":            "Jeopardy",
		"app.version":         "1.0.0",
		"app.environment":     "development",
		"app.public_base_url": "http://localhost:3000",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,
		"redis.key_prefix":     "jeopardy",

		"jwt.access_token_expire":  "15m",
		"jwt.refresh_token_expire": "168h",
		"jwt.reset_token_expire":   "30m",
		"jwt.issuer":               "jeopardy",
		"jwt.audience":             "jeopardy-api",
		"jwt.private_key_path":     "keys/private.pem",
		"jwt.public_key_path":      "keys/public.pem",

		"rate_limit.requests": 100,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "jeopardy-api",

		"mail.base_url":    "https://api.brevo.com/v3",
		"mail.sender_name": "Jeopardy Quiz Game",
		"mail.timeout":     "10s",

		"captcha.enabled":    false,
		"captcha.verify_url": "https://www.google.com/recaptcha/api/siteverify",
		"captcha.timeout":    "10s",

		"storage.backend":         "none",
		"storage.max_upload_size": 5 << 20,
		"storage.minio.bucket":    "jeopardy-media",

		"queue.backend":                    "none",
		"queue.notification_channel":       "purchase-downloads",
		"queue.rabbitmq.prefetch_count":    10,
		"queue.rabbitmq.queue_durable":     true,
		"queue.pubsub.subscription_suffix": "-sub",

		"quiz.session_ttl":       "6h",
		"quiz.leaderboard_limit": 0,

		"metrics.enabled": true,
		"metrics.path":    "/metrics",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":                "database.url",
	"REDIS_URL":                   "redis.url",
	"ENVIRONMENT":                 "app.environment",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"JWT_PRIVATE_KEY_PATH":        "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":         "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE":     "jwt.access_token_expire",
	"JWT_REFRESH_TOKEN_EXPIRE":    "jwt.refresh_token_expire",
	"JWT_ISSUER":                  "jwt.issuer",
	"JWT_AUDIENCE":                "jwt.audience",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
	"PUBLIC_BASE_URL":             "app.public_base_url",
	"JWT_RESET_TOKEN_EXPIRE":      "jwt.reset_token_expire",
	"BREVO_API_KEY":               "mail.api_key",
	"BREVO_SENDER_EMAIL":          "mail.sender_email",
	"BREVO_SENDER_NAME":           "mail.sender_name",
	"BREVO_USER_TEMPLATE_ID":      "mail.user_template_id",
	"BREVO_ADMIN_TEMPLATE_ID":     "mail.admin_template_id",
	"ADMIN_EMAIL":                 "mail.admin_email",
	"RECAPTCHA_ENABLED":           "captcha.enabled",
	"RECAPTCHA_SECRET_KEY":        "captcha.secret_key",
	"STORAGE_BACKEND":             "storage.backend",
	"STORAGE_MAX_UPLOAD_SIZE":     "storage.max_upload_size",
	"MINIO_ENDPOINT":              "storage.minio.endpoint",
	"MINIO_ACCESS_KEY":            "storage.minio.access_key",
	"MINIO_SECRET_KEY":            "storage.minio.secret_key",
	"MINIO_BUCKET":                "storage.minio.bucket",
	"MINIO_USE_SSL":               "storage.minio.use_ssl",
	"GCS_BUCKET":                  "storage.gcs.bucket",
	"GCS_PROJECT_ID":              "storage.gcs.project_id",
	"GCS_CREDENTIALS_FILE":        "storage.gcs.credentials_file",
	"QUEUE_BACKEND":               "queue.backend",
	"QUEUE_NOTIFICATION_CHANNEL":  "queue.notification_channel",
	"RABBITMQ_URL":                "queue.rabbitmq.url",
	"RABBITMQ_PREFETCH_COUNT":     "queue.rabbitmq.prefetch_count",
	"PUBSUB_PROJECT_ID":           "queue.pubsub.project_id",
	"PUBSUB_CREDENTIALS_FILE":     "queue.pubsub.credentials_file",
	"QUIZ_SESSION_TTL":            "quiz.session_ttl",
	"LEADERBOARD_LIMIT":           "quiz.leaderboard_limit",
	"METRICS_ENABLED":             "metrics.enabled",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWT.PrivateKeyPath == "" {
		return fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
	}

	if c.JWT.PublicKeyPath == "" {
		return fmt.Errorf("JWT_PUBLIC_KEY_PATH is required")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	switch c.Storage.Backend {
	case "", StorageNone:
	case StorageMinio:
		if c.Storage.Minio.Endpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required for the minio backend")
		}
	case StorageGCS:
		if c.Storage.GCS.Bucket == "" {
			return fmt.Errorf("GCS_BUCKET is required for the gcs backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Queue.Backend {
	case "", QueueNone:
	case QueueRabbitMQ:
		if c.Queue.RabbitMQ.URL == "" {
			return fmt.Errorf("RABBITMQ_URL is required for the rabbitmq backend")
		}
	case QueuePubSub:
		if c.Queue.PubSub.ProjectID == "" {
			return fmt.Errorf("PUBSUB_PROJECT_ID is required for the pubsub backend")
		}
	default:
		return fmt.Errorf("unknown queue backend %q", c.Queue.Backend)
	}

	if c.Captcha.Enabled && c.Captcha.SecretKey == "" {
		return fmt.Errorf("RECAPTCHA_SECRET_KEY is required when captcha is enabled")
	}

	if c.Quiz.SessionTTL <= 0 {
		return fmt.Errorf("quiz.session_ttl must be positive")
	}

	if c.Quiz.LeaderboardLimit < 0 {
		return fmt.Errorf("quiz.leaderboard_limit must not be negative")
	}

	return nil
}

const (
	StorageNone  = "none"
	StorageMinio = "minio"
	StorageGCS   = "gcs"

	QueueNone     = "none"
	QueueRabbitMQ = "rabbitmq"
	QueuePubSub   = "pubsub"
)

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
