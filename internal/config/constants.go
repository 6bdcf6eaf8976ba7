package config

import "time"

const (
	envPort             = "PORT"
	envConfigPath       = "CONFIG_PATH"
	envSource           = "SOURCE"
	envBaseURL          = "SOURCE_BASE_URL"
	envTeamPath         = "TEAM_PATH"
	envTeamName         = "TEAM_NAME"
	envTimezone         = "SOURCE_TIMEZONE"
	envFetchTimeout     = "FETCH_TIMEOUT"
	envUserAgent        = "USER_AGENT"
	envScanInterval     = "SCAN_INTERVAL"
	envLiveScanInterval = "LIVE_SCAN_INTERVAL"
	envStoreDays        = "STORE_DAYS"
	envMatchDetails     = "MATCH_DETAILS"
	envHistoryBackend   = "HISTORY_BACKEND"
	envHistoryPath      = "HISTORY_PATH"
	envRedisAddr        = "REDIS_ADDR"
	envRedisPassword    = "REDIS_PASSWORD"
	envRedisDB          = "REDIS_DB"
	envRedisKey         = "REDIS_KEY"
	envAdminToken       = "ADMIN_TOKEN"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"

	defaultPort         = "4000"
	defaultSource       = SourceZalgiris
	defaultBaseURL      = "https://zalgiris.lt"
	defaultTeamPath     = "/rungtynes"
	defaultTeamName     = "Žalgiris"
	defaultTimezone     = "Europe/Vilnius"
	defaultUserAgent    = "team-matches-service/1.0"
	defaultFetchTimeout = 15 * time.Second

	defaultScanInterval     = 600 * time.Second
	defaultLiveScanInterval = 20 * time.Second
	defaultStoreDays        = 30

	defaultHistoryBackend = BackendFile
	defaultHistoryFile    = "data/history.json"
	defaultHistorySQLite  = "data/history.db"
	defaultRedisAddr      = "localhost:6379"
	defaultRedisKey       = "team-matches:history"

	defaultMetricsPort = "9090"
	defaultServiceName = "team-matches-service"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)

// Bounds for the refresh knobs; out-of-range values fall back to defaults.
const (
	minScanInterval     = 60 * time.Second
	maxScanInterval     = 3600 * time.Second
	minLiveScanInterval = 5 * time.Second
	maxLiveScanInterval = 120 * time.Second
	minStoreDays        = 1
	maxStoreDays        = 365
)

// Supported sources.
const (
	SourceZalgiris = "zalgiris"
	SourceFixture  = "fixture"
)

// Supported history backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)
