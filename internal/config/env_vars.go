package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	configFileEnvVar = "CONSOLE_CONFIG"
	appDirName       = "crm-console"
)

func (c mainConfig) GetPort() string {
	port := c.v.Port
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (c mainConfig) GetAppName() string {
	return c.v.AppName
}

func (c mainConfig) GetEnv() string {
	return strings.ToUpper(c.v.Env)
}

func (c mainConfig) GetLogLevel() string {
	return strings.ToLower(c.v.LogLevel)
}

func (c mainConfig) GetLanguage() string {
	return c.v.Language
}

// GetOtelEndpoint returns the OTLP/HTTP collector URL. Empty disables tracing.
func (c mainConfig) GetOtelEndpoint() string {
	return c.v.OtelEndpoint
}

// DefaultConfigFile returns CONSOLE_CONFIG or <user config dir>/crm-console/config.yaml
func DefaultConfigFile() string {
	return GetEnv(configFileEnvVar, filepath.Join(configDir(), "config.yaml"))
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "data")
	}
	return filepath.Join(dir, appDirName)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
