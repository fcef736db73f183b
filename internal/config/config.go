package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	OAuth    OAuthConfig
	AWS      AWSConfig
	Storage  StorageConfig
	Sync     SyncConfig
	Cleanup  CleanupConfig
	Match    MatchConfig

	MigrationsDir string
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
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
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	TFASecret        string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
	TFAExpiresIn     time.Duration
}

type AuthConfig struct {
	LoginMaxAttempts   int
	LoginAttemptWindow time.Duration
	RateLimitRPS       float64
	RateLimitBurst     int
	TFAIssuer          string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type AWSConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type StorageConfig struct {
	Bucket     string
	PresignTTL time.Duration
}

type SyncConfig struct {
	DynamoTable string
	PageSize    int32
	Schedule    string
}

type CleanupConfig struct {
	Schedule string
	LockTTL  time.Duration
}

type MatchConfig struct {
	MaxPageScan int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. A dotenv file named by
// CONFIG_FILE (default ".env") is merged underneath when it exists.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	file := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if file == "" {
		file = ".env"
	}
	if _, err := os.Stat(file); err == nil {
		v.SetConfigFile(file)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config file %s", file)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("JWT_ACCESS_EXPIRES_IN", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "168h")
	v.SetDefault("JWT_TFA_EXPIRES_IN", "5m")
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_ATTEMPT_WINDOW", "15m")
	v.SetDefault("AUTH_RATE_LIMIT_RPS", 5)
	v.SetDefault("AUTH_RATE_LIMIT_BURST", 10)
	v.SetDefault("TFA_ISSUER", "jobboard")
	v.SetDefault("AWS_REGION", "eu-west-1")
	v.SetDefault("STORAGE_PRESIGN_TTL", "15m")
	v.SetDefault("SYNC_DYNAMO_TABLE", "job_postings")
	v.SetDefault("SYNC_PAGE_SIZE", 100)
	v.SetDefault("SYNC_SCHEDULE", "@every 6h")
	v.SetDefault("CLEANUP_SCHEDULE", "0 3 * * *")
	v.SetDefault("CLEANUP_LOCK_TTL", "10m")
	v.SetDefault("MATCH_MAX_PAGE_SCAN", 50)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
}

func fromViper(v *viper.Viper) (Config, error) {
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

	cfg := Config{}
	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     opt("JWT_ACCESS_SECRET"),
		RefreshSecret:    opt("JWT_REFRESH_SECRET"),
		TFASecret:        opt("JWT_TFA_SECRET"),
		AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
		TFAExpiresIn:     v.GetDuration("JWT_TFA_EXPIRES_IN"),
	}

	cfg.Auth = AuthConfig{
		LoginMaxAttempts:   v.GetInt("LOGIN_MAX_ATTEMPTS"),
		LoginAttemptWindow: v.GetDuration("LOGIN_ATTEMPT_WINDOW"),
		RateLimitRPS:       v.GetFloat64("AUTH_RATE_LIMIT_RPS"),
		RateLimitBurst:     v.GetInt("AUTH_RATE_LIMIT_BURST"),
		TFAIssuer:          opt("TFA_ISSUER"),
	}

	cfg.OAuth = OAuthConfig{
		GoogleClientID:     opt("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: opt("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  opt("GOOGLE_REDIRECT_URL"),
	}

	cfg.AWS = AWSConfig{
		Region:          opt("AWS_REGION"),
		Endpoint:        opt("AWS_ENDPOINT"),
		AccessKeyID:     opt("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: opt("AWS_SECRET_ACCESS_KEY"),
	}

	cfg.Storage = StorageConfig{
		Bucket:     opt("STORAGE_BUCKET"),
		PresignTTL: v.GetDuration("STORAGE_PRESIGN_TTL"),
	}

	cfg.Sync = SyncConfig{
		DynamoTable: opt("SYNC_DYNAMO_TABLE"),
		PageSize:    v.GetInt32("SYNC_PAGE_SIZE"),
		Schedule:    opt("SYNC_SCHEDULE"),
	}

	cfg.Cleanup = CleanupConfig{
		Schedule: opt("CLEANUP_SCHEDULE"),
		LockTTL:  v.GetDuration("CLEANUP_LOCK_TTL"),
	}

	cfg.Match = MatchConfig{
		MaxPageScan: v.GetInt("MATCH_MAX_PAGE_SCAN"),
	}

	cfg.MigrationsDir = opt("MIGRATIONS_DIR")

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}
