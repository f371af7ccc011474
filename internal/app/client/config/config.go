package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8000"
	defaultEnv           = "local"
	defaultConfigDir     = ".history"
	defaultTimeout       = 30 * time.Second
	tokenFile            = "token"
)

type Config struct {
	Env           string        `mapstructure:"app_env"`
	ServerAddress string        `mapstructure:"server_address"`
	LogLevel      string        `mapstructure:"log_level"`
	ConfigDir     string        `mapstructure:"config_dir"`
	TokenPath     string        `mapstructure:"token_path"`
	EnableTLS     bool          `mapstructure:"enable_tls"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// Load reads an optional .env, then the config file (cfgFile, or
// config.yaml in the config dir) and the environment. Env wins over the file.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if v == nil {
		v = viper.New()
	}
	v.AutomaticEnv()
	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("server_address", defaultServerAddress)
	v.SetDefault("enable_tls", false)
	v.SetDefault("timeout", defaultTimeout)

	configDir := v.GetString("config_dir")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		configDir = filepath.Join(home, defaultConfigDir)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Env:           v.GetString("app_env"),
		ServerAddress: v.GetString("server_address"),
		LogLevel:      v.GetString("log_level"),
		ConfigDir:     configDir,
		TokenPath:     v.GetString("token_path"),
		EnableTLS:     v.GetBool("enable_tls"),
		Timeout:       v.GetDuration("timeout"),
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = filepath.Join(configDir, tokenFile)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return errors.New("server_address must not be empty")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// BaseURL is the scheme and host every request is sent to. A server
// address that already carries a scheme is used as is.
func (c *Config) BaseURL() string {
	if strings.HasPrefix(c.ServerAddress, "http://") || strings.HasPrefix(c.ServerAddress, "https://") {
		return strings.TrimSuffix(c.ServerAddress, "/")
	}
	if c.EnableTLS {
		return "https://" + c.ServerAddress
	}
	return "http://" + c.ServerAddress
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
