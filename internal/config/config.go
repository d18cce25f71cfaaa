// Package config loads ferrodexd's runtime configuration from a file,
// environment variables, and flag overrides, in that increasing order of
// precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration for the ferrodexd daemon.
type Config struct {
	Index  IndexConfig  `mapstructure:"index"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// IndexConfig controls what gets indexed and how.
type IndexConfig struct {
	Root            string `mapstructure:"root"`
	MinTokenLength  int    `mapstructure:"min_token_length"`
	Stem            bool   `mapstructure:"stem"`
	RemoveStopwords bool   `mapstructure:"remove_stopwords"`
}

// ServerConfig controls the HTTP search server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Defaults returns the configuration used when no file, env var, or flag
// overrides a setting.
func Defaults() Config {
	return Config{
		Index: IndexConfig{
			Root:            ".",
			MinTokenLength:  2,
			Stem:            true,
			RemoveStopwords: true,
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Pretty: false},
	}
}

// Load reads configuration from configPath (if non-empty), then FERRODEX_*
// environment variables, layered over Defaults. It does not know about CLI
// flags; callers bind those separately with v.BindPFlag before calling Load.
func Load(v *viper.Viper, configPath string) (Config, error) {
	defaults := Defaults()
	v.SetDefault("index.root", defaults.Index.Root)
	v.SetDefault("index.min_token_length", defaults.Index.MinTokenLength)
	v.SetDefault("index.stem", defaults.Index.Stem)
	v.SetDefault("index.remove_stopwords", defaults.Index.RemoveStopwords)
	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.pretty", defaults.Log.Pretty)

	v.SetEnvPrefix("FERRODEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return cfg, nil
}
