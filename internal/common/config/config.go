// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig               `mapstructure:"app"`
	Camunda      CamundaConfig           `mapstructure:"camunda"`
	Database     DatabaseConfig          `mapstructure:"database"`
	Cache        CacheConfig             `mapstructure:"cache"`
	Workers      map[string]WorkerConfig `mapstructure:"workers"`
	Planner      PlannerConfig           `mapstructure:"planner"`
	HTTP         HTTPConfig              `mapstructure:"http"`
	Orchestrator OrchestratorConfig      `mapstructure:"orchestrator"`
	Logging      LoggingConfig           `mapstructure:"logging"`
	Registry     RegistryConfig          `mapstructure:"registry"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls the estimate cache. With Enabled=false only the
// in-process store is used.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	TTL      int    `mapstructure:"ttl"`       // milliseconds
	LocalTTL int    `mapstructure:"local_ttl"` // milliseconds
	Prefix   string `mapstructure:"prefix"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Domain Configuration ---

// PlannerConfig holds trip-planning defaults.
type PlannerConfig struct {
	DefaultOrigin string `mapstructure:"default_origin"`
	Currency      string `mapstructure:"currency"`
}

// HTTPConfig holds settings for the REST surface and health endpoints.
type HTTPConfig struct {
	Address         string   `mapstructure:"address"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	GinMode         string   `mapstructure:"gin_mode"`
}

// OrchestratorConfig is passed through to the LLM orchestrator that calls
// these workers. Nothing in this module talks to the model.
type OrchestratorConfig struct {
	Model  string `mapstructure:"model"`
	APIKey string `mapstructure:"api_key"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// RegistryConfig points at the activity registry file.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// AnyWorkerEnabled reports whether at least one Zeebe worker is switched on.
func (c *Config) AnyWorkerEnabled() bool {
	for _, w := range c.Workers {
		if w.Enabled {
			return true
		}
	}
	return false
}
