package config

// Credential store backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

func (c mainConfig) GetSessionBackend() string {
	return c.v.Session.Backend
}

func (c mainConfig) GetSessionFile() string {
	return c.v.Session.File
}

func (c mainConfig) GetSQLitePath() string {
	return c.v.Session.SQLitePath
}

func (c mainConfig) GetRedisAddr() string {
	return c.v.Session.RedisAddr
}

func (c mainConfig) GetRedisPassword() string {
	return c.v.Session.RedisPassword
}

func (c mainConfig) GetRedisDB() int {
	return c.v.Session.RedisDB
}

// GetRedisPrefix namespaces the token and user keys, e.g. "crm-console:token"
func (c mainConfig) GetRedisPrefix() string {
	return c.v.Session.RedisPrefix
}
