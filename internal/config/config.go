package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/habit-garden/internal/adapters/storage"
	"github.com/comitanigiacomo/habit-garden/internal/core/gamification"
)

const configFileEnv = "GARDEN_CONFIG_FILE"

type Config struct {
	Server    ServerConfig              `yaml:"server"`
	Storage   StorageConfig             `yaml:"storage"`
	Redis     RedisConfig               `yaml:"redis"`
	Auth      AuthConfig                `yaml:"auth"`
	RateLimit RateLimitConfig           `yaml:"rate_limit"`
	Log       LogConfig                 `yaml:"log"`
	Timezone  string                    `yaml:"timezone"`
	Points    gamification.PointsConfig `yaml:"points"`
	Workers   WorkersConfig             `yaml:"workers"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver     string `yaml:"driver"`
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
	KeyPrefix  string `yaml:"key_prefix"`
}

// RedisConfig is optional. An empty Host disables redis.
type RedisConfig struct {
	Host        string        `yaml:"host"`
	Port        string        `yaml:"port"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	ProgressTTL time.Duration `yaml:"progress_ttl"`
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	Issuer    string        `yaml:"issuer"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type WorkersConfig struct {
	QueueSize int `yaml:"queue_size"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Storage: StorageConfig{
			Driver:     storage.DriverFile,
			DataDir:    "./data",
			SQLitePath: "./data/garden.db",
		},
		Redis: RedisConfig{
			Port:        "6379",
			ProgressTTL: 30 * time.Minute,
		},
		Auth: AuthConfig{
			Issuer:   "habit-garden",
			TokenTTL: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
		Log:      LogConfig{Level: "info"},
		Timezone: "Local",
		Points:   gamification.DefaultPointsConfig(),
		Workers:  WorkersConfig{QueueSize: 100},
	}
}

// Load applies, in order, the defaults, the YAML file named by
// GARDEN_CONFIG_FILE and the environment. A .env file in the working
// directory is loaded first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv(configFileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.DataDir, "DATA_DIR")
	setString(&c.Storage.SQLitePath, "SQLITE_PATH")
	setString(&c.Storage.KeyPrefix, "STORAGE_KEY_PREFIX")
	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.Issuer, "JWT_ISSUER")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Timezone, "TZ_NAME")

	return errors.Join(
		setInt(&c.Redis.DB, "REDIS_DB"),
		setInt(&c.RateLimit.Requests, "RATE_LIMIT_REQUESTS"),
		setInt(&c.Workers.QueueSize, "WORKER_QUEUE_SIZE"),
		setDuration(&c.Auth.TokenTTL, "JWT_TTL"),
		setDuration(&c.RateLimit.Window, "RATE_LIMIT_WINDOW"),
		setDuration(&c.Redis.ProgressTTL, "PROGRESS_CACHE_TTL"),
		setBool(&c.Log.Development, "LOG_DEVELOPMENT"),
	)
}

func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case storage.DriverMemory, storage.DriverFile, storage.DriverSQLite:
	case storage.DriverRedis:
		if !c.Redis.Enabled() {
			errs = append(errs, errors.New("storage driver redis needs REDIS_HOST"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if c.Storage.Driver == storage.DriverFile && c.Storage.DataDir == "" {
		errs = append(errs, errors.New("file storage needs a data dir"))
	}
	if c.Storage.Driver == storage.DriverSQLite && c.Storage.SQLitePath == "" {
		errs = append(errs, errors.New("sqlite storage needs a path"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	if c.Points.HabitCompletion < 0 || c.Points.StreakBonusPerDay < 0 ||
		c.Points.PerfectWeek < 0 || c.Points.PerfectMonth < 0 {
		errs = append(errs, errors.New("point values cannot be negative"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Location resolves Timezone. "Local" and empty mean the process time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
