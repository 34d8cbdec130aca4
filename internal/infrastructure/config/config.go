package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "CRYPTOTRACKER"

	defaultPort          = "8080"
	defaultBaseURL       = "https://api.blockchair.com"
	defaultPageLimit     = 10
	defaultLogLevel      = "info"
	defaultLogFormat     = "json"
	defaultServerTimeout = 15 * time.Second
)

// Config holds the application configuration
type Config struct {
	Server   Server   `mapstructure:"server"`
	Explorer Explorer `mapstructure:"explorer"`
	Log      Log      `mapstructure:"log"`
}

// Server configuration
type Server struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

// Explorer configuration. A zero Timeout leaves requests unbounded.
type Explorer struct {
	BaseURL          string        `mapstructure:"baseURL"`
	Timeout          time.Duration `mapstructure:"timeout"`
	DefaultPageLimit int           `mapstructure:"defaultPageLimit"`
}

// Log configuration
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from YAML files in configDir.
// app-config.yaml is the base, <CONFIG_ENV>.yaml (default local) is merged on top,
// then environment variables win. A .env file in the working directory is read first.
func LoadConfig(configDir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	configEnv := os.Getenv("CONFIG_ENV")
	if configEnv == "" {
		configEnv = "local"
	}

	v := viper.New()
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.readTimeout", defaultServerTimeout)
	v.SetDefault("server.writeTimeout", defaultServerTimeout)
	v.SetDefault("explorer.baseURL", defaultBaseURL)
	v.SetDefault("explorer.timeout", time.Duration(0))
	v.SetDefault("explorer.defaultPageLimit", defaultPageLimit)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)

	// Load base app-config.yaml as template/defaults (if it exists)
	baseConfigPath := filepath.Join(configDir, "app-config.yaml")
	if _, err := os.Stat(baseConfigPath); err == nil {
		v.SetConfigFile(baseConfigPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read base config file: %w", err)
		}
	}

	// Merge environment-specific config (e.g., local.yaml when CONFIG_ENV=local)
	envConfigPath := filepath.Join(configDir, configEnv+".yaml")
	if _, err := os.Stat(envConfigPath); err == nil {
		v.SetConfigFile(envConfigPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to merge env config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// Bind environment variables
	_ = v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("explorer.baseURL", envPrefix+"_EXPLORER_BASE_URL", "EXPLORER_BASE_URL")
	_ = v.BindEnv("explorer.timeout", envPrefix+"_EXPLORER_TIMEOUT", "EXPLORER_TIMEOUT")
	_ = v.BindEnv("explorer.defaultPageLimit", envPrefix+"_EXPLORER_DEFAULT_PAGE_LIMIT")
	_ = v.BindEnv("log.level", envPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log.format", envPrefix+"_LOG_FORMAT", "LOG_FORMAT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Explorer.DefaultPageLimit < 1 {
		cfg.Explorer.DefaultPageLimit = defaultPageLimit
	}

	return &cfg, nil
}
