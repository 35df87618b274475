package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"splashbot/utils"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config はサーバーの設定です。CONFIG_FILE の YAML を読み込んだ後、環境変数で上書きします。
type Config struct {
	Addr            string        `yaml:"addr"`
	Port            string        `yaml:"port"`
	LogLevel        string        `yaml:"log_level"`
	AuthSecret      string        `yaml:"auth_secret"`
	OTelEnabled     bool          `yaml:"otel_enabled"`
	ServiceName     string        `yaml:"service_name"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
}

func Default() Config {
	return Config{
		Addr:            "0.0.0.0",
		Port:            "8080",
		LogLevel:        "info",
		ServiceName:     "splashbot",
		ShutdownTimeout: 10 * time.Second,
		IdleTimeout:     30 * time.Second,
	}
}

// Load は既定値、CONFIG_FILE、環境変数の順に設定を重ねます。
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Addr = utils.GetEnvDefault("ADDR", c.Addr)
	c.Port = utils.GetEnvDefault("PORT", c.Port)
	c.LogLevel = utils.GetEnvDefault("LOG_LEVEL", c.LogLevel)
	c.AuthSecret = utils.GetEnvDefault("AUTH_SECRET", c.AuthSecret)
	c.ServiceName = utils.GetEnvDefault("OTEL_SERVICE_NAME", c.ServiceName)

	var err error
	if c.OTelEnabled, err = utils.GetEnvBool("OTEL_ENABLED", c.OTelEnabled); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.ShutdownTimeout, err = utils.GetEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.IdleTimeout, err = utils.GetEnvDuration("IDLE_TIMEOUT", c.IdleTimeout); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port is required", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidConfig)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("%w: idle timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Level は LogLevel を slog.Level に変換します。
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}
