package config

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Trends TrendsConfig `mapstructure:"trends"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Logger LoggerConfig `mapstructure:"logger"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// TrendsConfig configures the upstream trends API client. HL and TZ are
// explicit here rather than ambient client state.
type TrendsConfig struct {
	Endpoint     string `mapstructure:"endpoint"`
	APIKey       string `mapstructure:"api_key"`
	HL           string `mapstructure:"hl"`
	TZ           int    `mapstructure:"tz"`
	TimeoutSec   int    `mapstructure:"timeout_sec"`
	MaxRetries   int    `mapstructure:"max_retries"`
	RetryDelayMs int    `mapstructure:"retry_delay_ms"`
}

type CacheConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
