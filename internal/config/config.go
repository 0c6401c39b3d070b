package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetLanguage() string
	GetOtelEndpoint() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
	GetLeadsPageSize() int
}

type SessionConfig interface {
	GetSessionBackend() string
	GetSessionFile() string
	GetSQLitePath() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
}

// values is the merged result of defaults, the YAML file and CONSOLE_* variables,
// applied in that order.
type values struct {
	Port         string `yaml:"port" env:"CONSOLE_PORT"`
	AppName      string `yaml:"app_name" env:"CONSOLE_APP_NAME"`
	Env          string `yaml:"env" env:"CONSOLE_ENV"`
	LogLevel     string `yaml:"log_level" env:"CONSOLE_LOG_LEVEL"`
	Language     string `yaml:"language" env:"CONSOLE_LANG"`
	OtelEndpoint string `yaml:"otel_endpoint" env:"CONSOLE_OTEL_ENDPOINT"`

	API struct {
		BaseURL       string        `yaml:"base_url" env:"CONSOLE_API_URL"`
		Timeout       time.Duration `yaml:"timeout" env:"CONSOLE_API_TIMEOUT"`
		LeadsPageSize int           `yaml:"leads_page_size" env:"CONSOLE_LEADS_PAGE_SIZE"`
	} `yaml:"api"`

	Session struct {
		Backend       string `yaml:"backend" env:"CONSOLE_SESSION_BACKEND"`
		File          string `yaml:"file" env:"CONSOLE_SESSION_FILE"`
		SQLitePath    string `yaml:"sqlite_path" env:"CONSOLE_SQLITE_PATH"`
		RedisAddr     string `yaml:"redis_addr" env:"CONSOLE_REDIS_ADDR"`
		RedisPassword string `yaml:"redis_password" env:"CONSOLE_REDIS_PASSWORD"`
		RedisDB       int    `yaml:"redis_db" env:"CONSOLE_REDIS_DB"`
		RedisPrefix   string `yaml:"redis_prefix" env:"CONSOLE_REDIS_PREFIX"`
	} `yaml:"session"`
}

type mainConfig struct {
	v values
}

var _ Config = mainConfig{}

// New loads the configuration from the default config file location and the environment.
func New() (Config, error) {
	return Load("")
}

// Load reads the YAML file at path (or the default location when path is empty),
// then overlays environment variables. A missing default file is not an error.
func Load(path string) (Config, error) {
	v := defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &v); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case explicit || !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := env.Parse(&v); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := v.validate(); err != nil {
		return nil, err
	}
	return mainConfig{v: v}, nil
}

func defaults() values {
	var v values
	v.Port = "8080"
	v.AppName = "SoftNova CRM"
	v.Env = "DEV"
	v.LogLevel = "info"
	v.Language = "es"
	v.API.BaseURL = "http://localhost:3000/api"
	v.API.Timeout = 15 * time.Second
	v.API.LeadsPageSize = 100
	v.Session.Backend = BackendFile
	v.Session.File = filepath.Join(configDir(), "session.json")
	v.Session.SQLitePath = filepath.Join(configDir(), "session.db")
	v.Session.RedisAddr = "localhost:6379"
	v.Session.RedisPrefix = "crm-console"
	return v
}

func (v values) validate() error {
	switch v.Session.Backend {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown session backend %q", v.Session.Backend)
	}
	if strings.TrimSpace(v.API.BaseURL) == "" {
		return fmt.Errorf("api base url is required")
	}
	if v.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}
	if v.API.LeadsPageSize <= 0 {
		return fmt.Errorf("leads page size must be positive")
	}
	return nil
}
