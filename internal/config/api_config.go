package config

import (
	"strings"
	"time"
)

// GetAPIBaseURL returns the CRM API root without a trailing slash, e.g. "http://localhost:3000/api"
func (c mainConfig) GetAPIBaseURL() string {
	return strings.TrimRight(c.v.API.BaseURL, "/")
}

func (c mainConfig) GetAPITimeout() time.Duration {
	return c.v.API.Timeout
}

// GetLeadsPageSize is the limit used when loading the leads board (the original console asked for 100)
func (c mainConfig) GetLeadsPageSize() int {
	return c.v.API.LeadsPageSize
}
