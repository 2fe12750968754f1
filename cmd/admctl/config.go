package main

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/openpilgrim/go-admin-client/internal/config"
	"github.com/pkg/errors"
)

// serviceConfig is the admctl configuration file, TOML on disk.
// Environment variables provide the defaults, the file overrides them.
type serviceConfig struct {
	BaseURL         string `toml:"base_url"`
	CredentialsFile string `toml:"credentials_file"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

func (c serviceConfig) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return config.New().GetRequestTimeout()
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// loadServiceConfig reads path when it exists; a missing file just means
// environment defaults.
func loadServiceConfig(path string) (serviceConfig, error) {
	env := config.New()
	cfg := serviceConfig{
		BaseURL:         env.GetBaseURL(),
		CredentialsFile: env.GetCredentialsFile(),
	}

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return serviceConfig{}, errors.Wrapf(err, "decode config %s", path)
	}
	if cfg.BaseURL == "" {
		return serviceConfig{}, errors.Errorf("config %s: base_url must not be empty", path)
	}
	return cfg, nil
}
