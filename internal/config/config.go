package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Lock       LockConfig       `mapstructure:"lock"`
	Individual IndividualConfig `mapstructure:"individual"`
	Results    ResultsConfig    `mapstructure:"results"`
	Storage    StorageConfig
	Log        LogConfig       `mapstructure:"log"`
	Tracing    TracingConfig   `mapstructure:"tracing"`
	CORS       CORSConfig      `mapstructure:"cors"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port        string
	Mode        string
	WatchConfig bool `mapstructure:"watch_config"`
}

// DatabaseConfig selects the document store backend. Only the block matching
// Driver is read.
type DatabaseConfig struct {
	Driver  string        `mapstructure:"driver"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	MySQL   MySQLConfig   `mapstructure:"mysql"`
	Badger  BadgerConfig  `mapstructure:"badger"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type MySQLConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string `mapstructure:"dbname"`
	Charset   string
	ParseTime bool `mapstructure:"parse_time"`
}

type BadgerConfig struct {
	Path       string        `mapstructure:"path"`
	InMemory   bool          `mapstructure:"in_memory"`
	SyncWrites bool          `mapstructure:"sync_writes"`
	GCInterval time.Duration `mapstructure:"gc_interval"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LockConfig picks how read-modify-write on a user's record is serialized.
// "local" guards a single process, "redis" guards every replica sharing the
// same redis.
type LockConfig struct {
	Driver string        `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
	Retry  time.Duration `mapstructure:"retry"`
}

type IndividualConfig struct {
	// ScoreRecompute is "incoming" or "merged".
	ScoreRecompute string `mapstructure:"score_recompute"`
}

type ResultsConfig struct {
	MaxTotalScore float64 `mapstructure:"max_total_score"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	PublicURL     string `mapstructure:"public_url"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverBadger = "badger"

	LockLocal = "local"
	LockRedis = "redis"

	RecomputeIncoming = "incoming"
	RecomputeMerged   = "merged"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.watch_config", false)

	v.SetDefault("database.driver", DriverBadger)
	v.SetDefault("database.timeout", "10s")
	v.SetDefault("database.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("database.mongo.database", "report")
	v.SetDefault("database.mysql.host", "localhost")
	v.SetDefault("database.mysql.port", 3306)
	v.SetDefault("database.mysql.charset", "utf8mb4")
	v.SetDefault("database.mysql.parse_time", true)
	v.SetDefault("database.badger.path", "data/badger")
	v.SetDefault("database.badger.sync_writes", true)
	v.SetDefault("database.badger.gc_interval", "5m")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("lock.driver", LockLocal)
	v.SetDefault("lock.ttl", "10s")
	v.SetDefault("lock.retry", "50ms")

	v.SetDefault("individual.score_recompute", RecomputeIncoming)
	v.SetDefault("results.max_total_score", 25)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "exports")
	v.SetDefault("storage.public_url", "/exports")

	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("rate_limit.max_requests", 100000)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig reads config.yaml from path. A missing file is not an error;
// defaults and environment variables still apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("REPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.mongo.uri", "MONGO_URI")
	v.BindEnv("database.mysql.host", "DATABASE_HOST")
	v.BindEnv("database.mysql.port", "DATABASE_PORT")
	v.BindEnv("database.mysql.user", "DATABASE_USER")
	v.BindEnv("database.mysql.password", "DATABASE_PASSWORD")
	v.BindEnv("database.mysql.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Storage / MinIO
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}

	switch c.Database.Driver {
	case DriverMongo, DriverMySQL, DriverBadger:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	switch c.Lock.Driver {
	case LockLocal, LockRedis:
	default:
		return fmt.Errorf("unknown lock driver %q", c.Lock.Driver)
	}

	switch c.Individual.ScoreRecompute {
	case RecomputeIncoming, RecomputeMerged:
	default:
		return fmt.Errorf("unknown score recompute mode %q", c.Individual.ScoreRecompute)
	}

	if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowMinutes <= 0 {
		return fmt.Errorf("rate_limit needs positive max_requests and window_minutes")
	}

	if c.Results.MaxTotalScore <= 0 {
		return fmt.Errorf("results.max_total_score must be positive, got %v", c.Results.MaxTotalScore)
	}

	return nil
}
