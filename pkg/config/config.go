package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	Admin         AdminConfig
	Session       SessionConfig
	Redis         RedisConfig
	Storage       StorageConfig
	WhatsApp      WhatsAppConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PIZZERIA_APP_ENV" default:"development"`
	Port         string `envconfig:"PIZZERIA_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"PIZZERIA_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PIZZERIA_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PIZZERIA_LOG_WARN_STACK" default:"false"`
	Timezone     string `envconfig:"PIZZERIA_TIMEZONE" default:"America/Argentina/Cordoba"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Location resolves the pizzeria's timezone, falling back to UTC when the
// name cannot be loaded.
func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AdminConfig carries the fixed admin credential. PasswordHash, when set,
// takes precedence over the plaintext Password and must be an argon2id
// encoded hash.
type AdminConfig struct {
	Password     string `envconfig:"PIZZERIA_ADMIN_PASSWORD" default:"Lucas351524"`
	PasswordHash string `envconfig:"PIZZERIA_ADMIN_PASSWORD_HASH"`
}

type SessionConfig struct {
	Secret            string `envconfig:"PIZZERIA_SESSION_SECRET" required:"true"`
	Issuer            string `envconfig:"PIZZERIA_SESSION_ISSUER" default:"pizzeria-api"`
	ExpirationMinutes int    `envconfig:"PIZZERIA_SESSION_EXPIRATION_MINUTES" default:"30"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(s.ExpirationMinutes) * time.Minute
}

type RedisConfig struct {
	URL          string        `envconfig:"PIZZERIA_REDIS_URL"`
	Address      string        `envconfig:"PIZZERIA_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"PIZZERIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"PIZZERIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PIZZERIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PIZZERIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PIZZERIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PIZZERIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PIZZERIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StorageConfig locates the flat-file store: two JSON documents under
// DataDir plus the uploaded image directory. UploadsDir is relative to
// DataDir, matching the layout the image references assume.
type StorageConfig struct {
	DataDir     string `envconfig:"PIZZERIA_DATA_DIR" default:"data"`
	CatalogFile string `envconfig:"PIZZERIA_CATALOG_FILE" default:"pizza-data.json"`
	ContactFile string `envconfig:"PIZZERIA_CONTACT_FILE" default:"whatsapp-config.json"`
	UploadsDir  string `envconfig:"PIZZERIA_UPLOADS_DIR" default:"uploads"`
	MaxUploadMB int    `envconfig:"PIZZERIA_MAX_UPLOAD_MB" default:"10"`
}

func (s StorageConfig) MaxUploadBytes() int64 {
	if s.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(s.MaxUploadMB) << 20
}

type WhatsAppConfig struct {
	DefaultNumber string `envconfig:"PIZZERIA_WHATSAPP_DEFAULT_NUMBER" default:"543516351524"`
}

type AuthRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"PIZZERIA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"PIZZERIA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PIZZERIA_CORS_ALLOWED_ORIGINS" default:"*"`
}
