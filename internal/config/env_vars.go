package config

import (
	"os"

	"github.com/consolehq/go-console-client/storage"
)

const (
	appNameVar     = "APP_NAME"
	baseURLVar     = "CONSOLE_API_URL"
	stateFileVar   = "CONSOLE_STATE_FILE"
	httpTimeoutVar = "CONSOLE_HTTP_TIMEOUT"
	envVar         = "ENV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Console")
}

// GetBaseURL returns the network root of the console API.
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:3000")
}

// GetStateFilePath returns where the persisted session lives on disk.
func (EnvVars) GetStateFilePath() string {
	return GetEnv(stateFileVar, storage.DefaultPath())
}

// GetHTTPTimeout returns the per-request timeout as a duration string.
func (EnvVars) GetHTTPTimeout() string {
	return GetEnv(httpTimeoutVar, "10s")
}

func (EnvVars) GetEnv() string {
	return GetEnv(envVar, "development")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
