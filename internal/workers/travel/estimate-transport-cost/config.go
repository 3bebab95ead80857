// internal/workers/travel/estimate-transport-cost/config.go
package estimatetransportcost

import (
	"time"

	"travel-planner-workers/internal/common/config"
	"travel-planner-workers/internal/planner"
)

type Config struct {
	Timeout       time.Duration
	DefaultOrigin string
}

func LoadConfig(wcfg config.WorkerConfig, pcfg config.PlannerConfig) *Config {
	origin := pcfg.DefaultOrigin
	if origin == "" {
		origin = planner.DefaultOrigin
	}
	return &Config{
		Timeout:       config.GetDuration(wcfg.Timeout),
		DefaultOrigin: origin,
	}
}
