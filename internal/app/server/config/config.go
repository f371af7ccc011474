package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	defaultEnvFile = ".env"
	localSecret    = "local-development-secret"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Auth   Auth
	Logger Logger
}

type DB struct {
	Driver      string
	DatabaseURI string
}

type Server struct {
	RunAddress      string
	ShutdownTimeout time.Duration
}

type Auth struct {
	Secret   string
	TokenTTL time.Duration
}

type Logger struct {
	LogLevel string
}

// Load reads envFile (when present) into the process environment and builds
// the config from env variables and whatever flags are bound to v.
// An empty envFile means ".env" and may be missing.
func Load(v *viper.Viper, envFile string) (*Config, error) {
	if envFile == "" {
		if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", defaultEnvFile, err)
		}
	} else if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	if v == nil {
		v = viper.New()
	}
	v.AutomaticEnv()
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8000")
	v.SetDefault("storage_driver", DriverPostgres)
	v.SetDefault("token_ttl", 7*24*time.Hour)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: DB{
			Driver:      v.GetString("storage_driver"),
			DatabaseURI: v.GetString("database_uri"),
		},
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Auth: Auth{
			Secret:   v.GetString("jwt_secret"),
			TokenTTL: v.GetDuration("token_ttl"),
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load for main packages.
func MustLoad(v *viper.Viper, envFile string) *Config {
	cfg, err := Load(v, envFile)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.DatabaseURI == "" {
			return errors.New("DATABASE_URI is required for the postgres driver")
		}
	case DriverSQLite:
		if c.DB.DatabaseURI == "" {
			c.DB.DatabaseURI = "history.db"
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.DB.Driver)
	}

	if c.Auth.Secret == "" {
		if c.Env != EnvLocal {
			return errors.New("JWT_SECRET is required outside the local environment")
		}
		c.Auth.Secret = localSecret
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
