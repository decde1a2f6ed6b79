package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings that may come from a config file or ARGDUMP_*
// environment variables. Command line flags override both.
type Config struct {
	Table          string   `mapstructure:"table"`
	Defaults       []string `mapstructure:"defaults"`
	Env            string   `mapstructure:"env"`
	Strict         bool     `mapstructure:"strict"`
	RelativeRsp    bool     `mapstructure:"relative_response_files"`
	DropDriverOnly bool     `mapstructure:"drop_driver_only"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("table", "")
	v.SetDefault("defaults", []string{})
	v.SetDefault("env", "")
	v.SetDefault("strict", false)
	v.SetDefault("relative_response_files", false)
	v.SetDefault("drop_driver_only", false)

	v.SetEnvPrefix("ARGDUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads path, when set, into v and decodes the merged settings
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ExitError{Code: exitInput, Err: fmt.Errorf("reading config %s: %w", path, err)}
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ExitError{Code: exitInput, Err: fmt.Errorf("decoding config: %w", err)}
	}
	return &cfg, nil
}
