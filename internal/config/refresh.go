package config

import "time"

// RefreshConfig holds the polling knobs of the coordinator.
type RefreshConfig struct {
	ScanInterval     time.Duration
	LiveScanInterval time.Duration
	StoreDays        int
	MatchDetails     bool
}

func defaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		ScanInterval:     defaultScanInterval,
		LiveScanInterval: defaultLiveScanInterval,
		StoreDays:        defaultStoreDays,
		MatchDetails:     true,
	}
}

func loadRefresh(base RefreshConfig) RefreshConfig {
	return RefreshConfig{
		ScanInterval:     durationEnvOrDefault(envScanInterval, base.ScanInterval),
		LiveScanInterval: durationEnvOrDefault(envLiveScanInterval, base.LiveScanInterval),
		StoreDays:        intEnvOrDefault(envStoreDays, base.StoreDays),
		MatchDetails:     boolEnvOrDefault(envMatchDetails, base.MatchDetails),
	}
}

func (r *RefreshConfig) normalize() {
	r.ScanInterval = durationInRange(r.ScanInterval, minScanInterval, maxScanInterval, defaultScanInterval)
	r.LiveScanInterval = durationInRange(r.LiveScanInterval, minLiveScanInterval, maxLiveScanInterval, defaultLiveScanInterval)
	r.StoreDays = intInRange(r.StoreDays, minStoreDays, maxStoreDays, defaultStoreDays)
}
