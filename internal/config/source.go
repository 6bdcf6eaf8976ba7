package config

import (
	"strings"
	"time"
)

// SourceConfig controls how the schedule page is reached and interpreted.
type SourceConfig struct {
	Name      string
	BaseURL   string
	TeamPath  string
	TeamName  string
	Timezone  string
	UserAgent string
	Timeout   time.Duration
}

func defaultSourceConfig() SourceConfig {
	return SourceConfig{
		Name:      defaultSource,
		BaseURL:   defaultBaseURL,
		TeamPath:  defaultTeamPath,
		TeamName:  defaultTeamName,
		Timezone:  defaultTimezone,
		UserAgent: defaultUserAgent,
		Timeout:   defaultFetchTimeout,
	}
}

func loadSource(base SourceConfig) SourceConfig {
	return SourceConfig{
		Name:      strings.ToLower(envOrDefault(envSource, base.Name)),
		BaseURL:   envOrDefault(envBaseURL, base.BaseURL),
		TeamPath:  envOrDefault(envTeamPath, base.TeamPath),
		TeamName:  envOrDefault(envTeamName, base.TeamName),
		Timezone:  envOrDefault(envTimezone, base.Timezone),
		UserAgent: envOrDefault(envUserAgent, base.UserAgent),
		Timeout:   durationEnvOrDefault(envFetchTimeout, base.Timeout),
	}
}

func (s *SourceConfig) normalize() {
	switch s.Name {
	case SourceZalgiris, SourceFixture:
	default:
		s.Name = defaultSource
	}
	s.BaseURL = strings.TrimSuffix(s.BaseURL, "/")
	if s.TeamPath == "" {
		s.TeamPath = defaultTeamPath
	}
	if !strings.HasPrefix(s.TeamPath, "/") {
		s.TeamPath = "/" + s.TeamPath
	}
	if s.Timeout <= 0 {
		s.Timeout = defaultFetchTimeout
	}
}

// ScheduleURL joins the base URL and team path.
func (s SourceConfig) ScheduleURL() string {
	return strings.TrimSuffix(s.BaseURL, "/") + s.TeamPath
}
