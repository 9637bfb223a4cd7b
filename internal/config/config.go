package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	DefaultTokenTTL = 7 * 24 * time.Hour
)

type Config struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Port int    `env:"PORT" envDefault:"3000"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"mongo"`

	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"noticiasdb"`

	DBURL      string `env:"DATABASE_URL"`
	DBHost     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"noticias"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"noticias"`
	DBName     string `env:"DB_NAME" envDefault:"noticias"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxConns int32  `env:"DB_MAX_CONNS" envDefault:"10"`

	// JWTSecret has no default: signing fails closed when it is empty.
	JWTSecret    string `env:"JWT_SECRET"`
	JWTExpiresIn string `env:"JWT_EXPIRES_IN" envDefault:"7d"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	InitSuperadmin     bool   `env:"INIT_SUPERADMIN" envDefault:"false"`
	SuperadminEmail    string `env:"SUPERADMIN_EMAIL" envDefault:"superadmin@tunoticias.com"`
	SuperadminPassword string `env:"SUPERADMIN_PASSWORD"`
	SuperadminName     string `env:"SUPERADMIN_NAME" envDefault:"Super"`
	SuperadminLastName string `env:"SUPERADMIN_LASTNAME" envDefault:"Admin"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"backend-noticias"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBURL == "" {
		cfg.DBURL = cfg.buildDBURL()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("APP_ENV must be one of development, production, test; got %q", c.Env)
	}

	switch c.StorageDriver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of mongo, postgres, memory; got %q", c.StorageDriver)
	}

	if _, err := ParseTTL(c.JWTExpiresIn); err != nil {
		return fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}

	if c.InitSuperadmin && c.SuperadminPassword == "" {
		return errors.New("INIT_SUPERADMIN is enabled but SUPERADMIN_PASSWORD is not set")
	}

	return nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// TokenTTL is the parsed JWT_EXPIRES_IN; Validate has already rejected bad values.
func (c Config) TokenTTL() time.Duration {
	ttl, err := ParseTTL(c.JWTExpiresIn)
	if err != nil {
		return DefaultTokenTTL
	}
	return ttl
}

func (c Config) buildDBURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// ParseTTL accepts Go durations ("12h", "90m"), a day suffix ("7d") or bare seconds ("3600").
// An empty value means the default lifetime.
func ParseTTL(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTokenTTL, nil
	}

	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return d, nil
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
