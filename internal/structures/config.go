package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type UpstreamConfig struct {
	BaseURL         string        `yaml:"baseURL" validate:"required|fullUrl"`
	Timeout         time.Duration `yaml:"timeout"`
	HitsPerPage     int           `yaml:"hitsPerPage" validate:"min:1|max:100"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Size      int           `yaml:"size"`
	TTL       time.Duration `yaml:"ttl"`
	RecentTTL time.Duration `yaml:"recentTTL"`
}

type SettingsConfig struct {
	FilePath string `yaml:"filePath"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Upstream  UpstreamConfig `yaml:"upstream"`
	Cache     CacheConfig    `yaml:"cache"`
	Settings  SettingsConfig `yaml:"settings"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
