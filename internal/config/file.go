package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML layout. Intervals are given in seconds.
type fileConfig struct {
	Port       string `yaml:"port"`
	AdminToken string `yaml:"admin_token"`
	Source     struct {
		Name           string `yaml:"name"`
		BaseURL        string `yaml:"base_url"`
		TeamPath       string `yaml:"team_path"`
		TeamName       string `yaml:"team_name"`
		Timezone       string `yaml:"timezone"`
		UserAgent      string `yaml:"user_agent"`
		TimeoutSeconds int    `yaml:"timeout"`
	} `yaml:"source"`
	ScanInterval     int   `yaml:"scan_interval"`
	LiveScanInterval int   `yaml:"live_scan_interval"`
	StoreDays        int   `yaml:"store_days"`
	MatchDetails     *bool `yaml:"match_details"`
	History          struct {
		Backend       string `yaml:"backend"`
		Path          string `yaml:"path"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
		RedisKey      string `yaml:"redis_key"`
	} `yaml:"history"`
	Metrics struct {
		Enabled      *bool  `yaml:"enabled"`
		Port         string `yaml:"port"`
		OtlpEndpoint string `yaml:"otlp_endpoint"`
		ServiceName  string `yaml:"service_name"`
	} `yaml:"metrics"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file: %w", err)
	}
	return fc, nil
}

func (fc fileConfig) apply(cfg *Config) {
	setString(&cfg.Port, fc.Port)
	setString(&cfg.AdminToken, fc.AdminToken)

	setString(&cfg.Source.Name, fc.Source.Name)
	setString(&cfg.Source.BaseURL, fc.Source.BaseURL)
	setString(&cfg.Source.TeamPath, fc.Source.TeamPath)
	setString(&cfg.Source.TeamName, fc.Source.TeamName)
	setString(&cfg.Source.Timezone, fc.Source.Timezone)
	setString(&cfg.Source.UserAgent, fc.Source.UserAgent)
	setSeconds(&cfg.Source.Timeout, fc.Source.TimeoutSeconds)

	setSeconds(&cfg.Refresh.ScanInterval, fc.ScanInterval)
	setSeconds(&cfg.Refresh.LiveScanInterval, fc.LiveScanInterval)
	if fc.StoreDays != 0 {
		cfg.Refresh.StoreDays = fc.StoreDays
	}
	if fc.MatchDetails != nil {
		cfg.Refresh.MatchDetails = *fc.MatchDetails
	}

	setString(&cfg.History.Backend, fc.History.Backend)
	setString(&cfg.History.Path, fc.History.Path)
	setString(&cfg.History.RedisAddr, fc.History.RedisAddr)
	setString(&cfg.History.RedisPassword, fc.History.RedisPassword)
	setString(&cfg.History.RedisKey, fc.History.RedisKey)
	if fc.History.RedisDB != 0 {
		cfg.History.RedisDB = fc.History.RedisDB
	}

	if fc.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *fc.Metrics.Enabled
	}
	setString(&cfg.Metrics.Port, fc.Metrics.Port)
	setString(&cfg.Metrics.OtlpEndpoint, fc.Metrics.OtlpEndpoint)
	setString(&cfg.Metrics.ServiceName, fc.Metrics.ServiceName)

	setString(&cfg.Log.Level, fc.Log.Level)
	setString(&cfg.Log.Format, fc.Log.Format)
}

func setString(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

func setSeconds(dst *time.Duration, secs int) {
	if secs != 0 {
		*dst = time.Duration(secs) * time.Second
	}
}
