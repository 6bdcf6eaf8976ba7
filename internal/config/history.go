package config

import "strings"

// HistoryConfig selects and configures the persisted history backend.
type HistoryConfig struct {
	Backend       string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

func defaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		Backend:   defaultHistoryBackend,
		RedisAddr: defaultRedisAddr,
		RedisKey:  defaultRedisKey,
	}
}

func loadHistory(base HistoryConfig) HistoryConfig {
	return HistoryConfig{
		Backend:       strings.ToLower(envOrDefault(envHistoryBackend, base.Backend)),
		Path:          envOrDefault(envHistoryPath, base.Path),
		RedisAddr:     envOrDefault(envRedisAddr, base.RedisAddr),
		RedisPassword: envOrDefault(envRedisPassword, base.RedisPassword),
		RedisDB:       intEnvOrDefault(envRedisDB, base.RedisDB),
		RedisKey:      envOrDefault(envRedisKey, base.RedisKey),
	}
}

func (h *HistoryConfig) normalize() {
	switch h.Backend {
	case BackendFile, BackendSQLite, BackendRedis:
	default:
		h.Backend = defaultHistoryBackend
	}
	if h.Path == "" {
		switch h.Backend {
		case BackendSQLite:
			h.Path = defaultHistorySQLite
		case BackendFile:
			h.Path = defaultHistoryFile
		}
	}
	if h.RedisKey == "" {
		h.RedisKey = defaultRedisKey
	}
}
