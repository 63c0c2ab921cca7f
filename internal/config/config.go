package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Matching   MatchingConfig
	Extraction ExtractionConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	WSPort      string
	LogJSON     bool
	LogLevel    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	RunMigrations bool
	RunSeeders    bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// AuthConfig describes how access tokens issued by the hosted auth provider
// are verified.
type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

type MatchingConfig struct {
	// CronSecret guards the batch recalculation trigger. It may be empty at
	// boot; the trigger then answers with a configuration error.
	CronSecret     string
	BatchTimeout   time.Duration
	BatchWorkers   int
	RecalcInterval time.Duration
	TaxonomyFile   string
}

type ExtractionConfig struct {
	GeminiAPIKey string
	GeminiModel  string
	Timeout      time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	return LoadFrom(newViper())
}

// LoadFrom reads the configuration from v, which is expected to resolve the
// environment variable names used below.
func LoadFrom(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		WSPort:      opt("WS_PORT"),
		LogJSON:     v.GetBool("LOG_JSON"),
		LogLevel:    opt("LOG_LEVEL"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),

		RunMigrations: v.GetBool("DB_RUN_MIGRATIONS"),
		RunSeeders:    v.GetBool("DB_RUN_SEEDERS"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.Auth = AuthConfig{
		JWTSecret: req("AUTH_JWT_SECRET"),
		JWTIssuer: opt("AUTH_JWT_ISSUER"),
	}

	cfg.Matching = MatchingConfig{
		CronSecret:     opt("CRON_SECRET"),
		BatchTimeout:   v.GetDuration("MATCH_BATCH_TIMEOUT"),
		BatchWorkers:   v.GetInt("MATCH_BATCH_WORKERS"),
		RecalcInterval: v.GetDuration("MATCH_RECALC_INTERVAL"),
		TaxonomyFile:   opt("MATCH_TAXONOMY_FILE"),
	}

	cfg.Extraction = ExtractionConfig{
		GeminiAPIKey: opt("GEMINI_API_KEY"),
		GeminiModel:  opt("GEMINI_MODEL"),
		Timeout:      v.GetDuration("ANALYSIS_TIMEOUT"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if cfg.Matching.BatchWorkers <= 0 {
		cfg.Matching.BatchWorkers = 1
	}
	if cfg.Matching.RecalcInterval < 0 {
		return Config{}, fmt.Errorf("MATCH_RECALC_INTERVAL must not be negative")
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", 600*time.Second)
	v.SetDefault("MATCH_BATCH_TIMEOUT", 60*time.Second)
	v.SetDefault("MATCH_BATCH_WORKERS", 1)
	v.SetDefault("MATCH_RECALC_INTERVAL", time.Duration(0))
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("ANALYSIS_TIMEOUT", 60*time.Second)

	return v
}

// NewViper exposes the env-bound viper instance so CLI flags can be bound on
// top of it.
func NewViper() *viper.Viper {
	return newViper()
}
