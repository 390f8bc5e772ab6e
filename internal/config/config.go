package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load reads the YAML config at path and fills in defaults. An empty path
// yields a config built entirely from defaults, so the tool is usable
// without any config file at all.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
		}
		if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
			dc.TagName = "toml"
			dc.WeaklyTypedInput = true
		}); err != nil {
			return nil, fmt.Errorf("parsing config failed: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("resolving app.timezone failed: %w", err)
	}
	cfg.loc = loc
	return &cfg, nil
}
