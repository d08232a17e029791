package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Sync   SyncConfig   `mapstructure:"sync"`
	TUI    TUIConfig    `mapstructure:"tui"`
}

type ServerConfig struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SyncConfig struct {
	// IntervalSeconds is how often the sweep flushes pending creates and
	// updates to the server.
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

type TUIConfig struct {
	// Theme is one of: auto|light|dark.
	Theme string `mapstructure:"theme"`
}

func (c ServerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c SyncConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Load reads the yaml config. An explicit configFile wins; otherwise the
// search path is the working directory and $HOME/.config/notelist. A missing
// file is fine, defaults apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/notelist")
	}

	v.SetDefault("server.url", "http://localhost:8080")
	v.SetDefault("server.timeout_seconds", 10)
	v.SetDefault("sync.interval_seconds", 5)
	v.SetDefault("tui.theme", "auto")

	if err := v.BindEnv("server.url", "NOTELIST_SERVER"); err != nil {
		return nil, fmt.Errorf("failed to bind NOTELIST_SERVER environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	return &cfg, nil
}
