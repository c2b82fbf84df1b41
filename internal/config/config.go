// Package config loads process configuration from an optional YAML file
// overridden by SUPPLYCORE_* environment variables.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`

	HTTP struct {
		Addr            string        `mapstructure:"addr"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"http"`

	Storage struct {
		Driver      string `mapstructure:"driver"`
		SQLitePath  string `mapstructure:"sqlite_path"`
		PostgresDSN string `mapstructure:"postgres_dsn"`
		FSDir       string `mapstructure:"fs_dir"`
	} `mapstructure:"storage"`

	Archive struct {
		Driver string `mapstructure:"driver"`
		FSRoot string `mapstructure:"fs_root"`
	} `mapstructure:"archive"`

	Auth struct {
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`

	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`
}

// Load reads the file at path when it exists, then applies environment
// overrides. An empty path skips the file entirely, leaving defaults plus
// environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SUPPLYCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite_path", "supplycore.db")
	v.SetDefault("archive.driver", "fs")
	v.SetDefault("archive.fs_root", "./archives")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("metrics.enabled", true)

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return c, err
			}
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
