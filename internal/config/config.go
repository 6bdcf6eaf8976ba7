package config

import (
	"fmt"
	"strings"
)

// Config holds runtime configuration for the service.
// It is built once at startup and passed by value; nothing mutates it afterwards.
type Config struct {
	Port       string
	AdminToken string
	Source     SourceConfig
	Refresh    RefreshConfig
	History    HistoryConfig
	Metrics    MetricsConfig
	Log        LogConfig
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg := defaults()
	applyEnv(&cfg)
	cfg.normalize()
	return cfg
}

// LoadFile layers a YAML file under environment overrides.
// An empty path behaves like Load.
func LoadFile(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) != "" {
		fc, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		fc.apply(&cfg)
	}
	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

// PathFromEnv returns CONFIG_PATH when set.
func PathFromEnv() string {
	return envOrDefault(envConfigPath, "")
}

func defaults() Config {
	return Config{
		Port:    defaultPort,
		Source:  defaultSourceConfig(),
		Refresh: defaultRefreshConfig(),
		History: defaultHistoryConfig(),
		Metrics: defaultMetricsConfig(),
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Port = envOrDefault(envPort, cfg.Port)
	cfg.AdminToken = envOrDefault(envAdminToken, cfg.AdminToken)
	cfg.Source = loadSource(cfg.Source)
	cfg.Refresh = loadRefresh(cfg.Refresh)
	cfg.History = loadHistory(cfg.History)
	cfg.Metrics = loadMetrics(cfg.Metrics)
	cfg.Log.Level = envOrDefault(envLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOrDefault(envLogFormat, cfg.Log.Format)
}

func (c *Config) normalize() {
	c.Refresh.normalize()
	c.Source.normalize()
	c.History.normalize()
}

// String summarises the effective configuration without secrets.
func (c Config) String() string {
	return fmt.Sprintf("source=%s url=%s scan=%s live_scan=%s store_days=%d history=%s",
		c.Source.Name, c.Source.ScheduleURL(), c.Refresh.ScanInterval, c.Refresh.LiveScanInterval,
		c.Refresh.StoreDays, c.History.Backend)
}
