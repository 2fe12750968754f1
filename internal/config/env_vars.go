package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	baseURLVar   = "PILGRIM_API_BASE_URL"
	timeoutVar   = "PILGRIM_API_TIMEOUT_SECONDS"
	credsFileVar = "PILGRIM_CREDENTIALS_FILE"
)

// EnvVars reads client configuration from the environment.
type EnvVars struct{}

var _ Config = EnvVars{}

func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

func (EnvVars) GetRequestTimeout() time.Duration {
	raw := GetEnv(timeoutVar, "10")
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		seconds = 10
	}
	return time.Duration(seconds) * time.Second
}

func (EnvVars) GetCredentialsFile() string {
	if v := os.Getenv(credsFileVar); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pilgrim-credentials.json"
	}
	return filepath.Join(home, ".pilgrim", "credentials.json")
}

// GetEnv returns the environment value for key, or defaultValue when
// unset or empty.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
