// internal/workers/travel/classify-travel-intent/config.go
package classifytravelintent

import (
	"time"

	"travel-planner-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	return &Config{
		Timeout: config.GetDuration(wcfg.Timeout),
	}
}
