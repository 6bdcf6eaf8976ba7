package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Refresh.ScanInterval != 600*time.Second {
		t.Fatalf("expected default scan interval 600s, got %s", cfg.Refresh.ScanInterval)
	}
	if cfg.Refresh.LiveScanInterval != 20*time.Second {
		t.Fatalf("expected default live scan interval 20s, got %s", cfg.Refresh.LiveScanInterval)
	}
	if cfg.Refresh.StoreDays != defaultStoreDays {
		t.Fatalf("expected default store days %d, got %d", defaultStoreDays, cfg.Refresh.StoreDays)
	}
	if !cfg.Refresh.MatchDetails {
		t.Fatalf("expected match page details enabled by default")
	}
	if cfg.Source.ScheduleURL() != "https://zalgiris.lt/rungtynes" {
		t.Fatalf("unexpected schedule url %s", cfg.Source.ScheduleURL())
	}
	if cfg.History.Backend != BackendFile || cfg.History.Path != defaultHistoryFile {
		t.Fatalf("unexpected history defaults %+v", cfg.History)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envScanInterval, "300")
	t.Setenv(envLiveScanInterval, "30s")
	t.Setenv(envStoreDays, "14")
	t.Setenv(envSource, "FIXTURE")
	t.Setenv(envTeamPath, "komanda/rungtynes")
	t.Setenv(envHistoryBackend, "sqlite")
	t.Setenv(envAdminToken, "secret")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Refresh.ScanInterval != 5*time.Minute {
		t.Fatalf("expected scan interval 5m, got %s", cfg.Refresh.ScanInterval)
	}
	if cfg.Refresh.LiveScanInterval != 30*time.Second {
		t.Fatalf("expected live scan interval 30s, got %s", cfg.Refresh.LiveScanInterval)
	}
	if cfg.Refresh.StoreDays != 14 {
		t.Fatalf("expected store days 14, got %d", cfg.Refresh.StoreDays)
	}
	if cfg.Source.Name != SourceFixture {
		t.Fatalf("expected fixture source, got %s", cfg.Source.Name)
	}
	if cfg.Source.TeamPath != "/komanda/rungtynes" {
		t.Fatalf("expected team path to gain leading slash, got %s", cfg.Source.TeamPath)
	}
	if cfg.History.Backend != BackendSQLite || cfg.History.Path != defaultHistorySQLite {
		t.Fatalf("expected sqlite backend with default path, got %+v", cfg.History)
	}
	if cfg.AdminToken != "secret" {
		t.Fatalf("expected admin token override")
	}
}

func TestLoadOutOfRangeFallsBack(t *testing.T) {
	t.Setenv(envScanInterval, "10")
	t.Setenv(envLiveScanInterval, "10m")
	t.Setenv(envStoreDays, "1000")
	t.Setenv(envSource, "somewhere-else")
	t.Setenv(envHistoryBackend, "postgres")

	cfg := Load()

	if cfg.Refresh.ScanInterval != defaultScanInterval {
		t.Fatalf("expected default scan interval, got %s", cfg.Refresh.ScanInterval)
	}
	if cfg.Refresh.LiveScanInterval != defaultLiveScanInterval {
		t.Fatalf("expected default live interval, got %s", cfg.Refresh.LiveScanInterval)
	}
	if cfg.Refresh.StoreDays != defaultStoreDays {
		t.Fatalf("expected default store days, got %d", cfg.Refresh.StoreDays)
	}
	if cfg.Source.Name != defaultSource {
		t.Fatalf("expected default source, got %s", cfg.Source.Name)
	}
	if cfg.History.Backend != defaultHistoryBackend {
		t.Fatalf("expected default backend, got %s", cfg.History.Backend)
	}
}

func TestLoadFileLayersUnderEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
port: "4100"
scan_interval: 900
live_scan_interval: 15
store_days: 10
match_details: false
source:
  team_name: Rytas
  timezone: UTC
history:
  backend: redis
  redis_addr: redis:6379
  redis_db: 2
metrics:
  enabled: false
unknown_section:
  ignored: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(envLiveScanInterval, "45")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != "4100" {
		t.Fatalf("expected port from file, got %s", cfg.Port)
	}
	if cfg.Refresh.ScanInterval != 15*time.Minute {
		t.Fatalf("expected scan interval from file, got %s", cfg.Refresh.ScanInterval)
	}
	if cfg.Refresh.LiveScanInterval != 45*time.Second {
		t.Fatalf("expected env to win over file, got %s", cfg.Refresh.LiveScanInterval)
	}
	if cfg.Refresh.StoreDays != 10 {
		t.Fatalf("expected store days from file, got %d", cfg.Refresh.StoreDays)
	}
	if cfg.Refresh.MatchDetails {
		t.Fatalf("expected match details disabled by file")
	}
	if cfg.Source.TeamName != "Rytas" || cfg.Source.Timezone != "UTC" {
		t.Fatalf("unexpected source %+v", cfg.Source)
	}
	if cfg.History.Backend != BackendRedis || cfg.History.RedisAddr != "redis:6379" || cfg.History.RedisDB != 2 {
		t.Fatalf("unexpected history %+v", cfg.History)
	}
	if cfg.Metrics.Enabled {
		t.Fatalf("expected metrics disabled by file")
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadFileEmptyPathUsesEnv(t *testing.T) {
	t.Setenv(envPort, "4200")
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != "4200" {
		t.Fatalf("expected env port, got %s", cfg.Port)
	}
}

func TestConfigStringOmitsSecrets(t *testing.T) {
	t.Setenv(envAdminToken, "super-secret")
	t.Setenv(envRedisPassword, "hunter2")
	s := Load().String()
	for _, secret := range []string{"super-secret", "hunter2"} {
		if strings.Contains(s, secret) {
			t.Fatalf("expected %q to be omitted from %q", secret, s)
		}
	}
}
