// Package config supplies client configuration from the environment.
package config

import "time"

type Config interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetCredentialsFile() string
}

func New() Config {
	return EnvVars{}
}
