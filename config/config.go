// Package config holds settings shared by every command, read from an
// optional settings file and the environment through Viper.
package config

import (
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. DNAIMAGE_WORKERS
const EnvPrefix = "DNAIMAGE"

// Config is the root-level settings struct
type Config struct {
	// path to the pool archive
	DB string `mapstructure:"db"`

	// number of goroutines used to assemble rows or check reads
	Workers int `mapstructure:"workers"`

	// whether the first line of a text read file is a header
	SkipHeader bool `mapstructure:"skip-header"`

	// whether to show a progress bar
	Progress bool `mapstructure:"progress"`
}

// Load returns the settings from file, which may be empty, overlaid with
// any DNAIMAGE_ environment variables.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db", "dnaimage.db")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("skip-header", true)
	v.SetDefault("progress", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return &c, nil
}
