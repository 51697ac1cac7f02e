package config

type Config struct {
	Source  SourceConfig  `yaml:"source" toml:"source"`
	Logs    LogsConfig    `yaml:"logs" toml:"logs"`
	Catalog CatalogConfig `yaml:"catalog" toml:"catalog"`
	UI      UIConfig      `yaml:"ui" toml:"ui"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// SourceConfig selects where runs and their logs come from.
type SourceConfig struct {
	Kind     string `yaml:"kind" toml:"kind"` // file, http or demo
	Dir      string `yaml:"dir" toml:"dir"`
	URL      string `yaml:"url" toml:"url"`
	Timeout  int    `yaml:"timeout" toml:"timeout"` // seconds
	RetryMax int    `yaml:"retry_max" toml:"retry_max"`
}

type LogsConfig struct {
	PageSize       int    `yaml:"page_size" toml:"page_size"`
	FollowInterval int    `yaml:"follow_interval" toml:"follow_interval"` // milliseconds
	Template       string `yaml:"template" toml:"template"`
	Follow         *bool  `yaml:"follow" toml:"follow"`
}

type CatalogConfig struct {
	RefreshInterval int `yaml:"refresh_interval" toml:"refresh_interval"` // seconds
}

type UIConfig struct {
	LogScrollSpeed int   `yaml:"log_scroll_speed" toml:"log_scroll_speed"`
	AltScreen      *bool `yaml:"alt_screen" toml:"alt_screen"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}
