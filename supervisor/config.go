package supervisor

import (
	"bytes"

	"github.com/spf13/viper"
)

// LoadConfig reads a YAML configuration from data, overlaying it onto
// DefaultConfig so a partial file only needs to name the fields it
// overrides.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
