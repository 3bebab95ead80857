// internal/workers/travel/compose-travel-plan/config.go
package composetravelplan

import (
	"time"

	"travel-planner-workers/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	AppVersion string
}

func LoadConfig(wcfg config.WorkerConfig, app config.AppConfig) *Config {
	return &Config{
		Timeout:    config.GetDuration(wcfg.Timeout),
		AppVersion: app.Version,
	}
}
