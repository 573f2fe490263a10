package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by bialog.
const (
	EnvHome        = "BIALOG_HOME"
	EnvAPIEndpoint = "BIALOG_API_ENDPOINT"
	EnvAPITimeout  = "BIALOG_API_TIMEOUT"
	EnvLogLevel    = "BIALOG_LOG_LEVEL"
	EnvLogFormat   = "BIALOG_LOG_FORMAT"
	EnvToken       = "BIALOG_TOKEN"
	EnvWindowSize  = "BIALOG_PAGE_WINDOW"
)

// defaultDotEnv is the .env file looked up in the working directory.
const defaultDotEnv = ".env"

// LoadDotEnv loads variables from path (".env" when empty) into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = defaultDotEnv
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto cfg. Values that fail to parse
// are ignored and the existing setting is kept.
func ApplyEnv(cfg *Config, lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvAPIEndpoint); ok && v != "" {
		cfg.API.Endpoint = v
	}
	if v, ok := lookupEnv(EnvAPITimeout); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.TimeoutSeconds = n
		}
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		cfg.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvWindowSize); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pagination.WindowSize = n
		}
	}
}
