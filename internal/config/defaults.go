package config

func boolPtr(b bool) *bool { return &b }

const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceDemo = "demo"

	TemplateConcise = "concise"
	TemplateFull    = "full"
)

func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Kind:     SourceFile,
			Dir:      "~/.runlogs/runs",
			URL:      "http://localhost:5001",
			Timeout:  10,
			RetryMax: 3,
		},
		Logs: LogsConfig{
			PageSize:       200,
			FollowInterval: 1000,
			Template:       TemplateConcise,
			Follow:         boolPtr(false),
		},
		Catalog: CatalogConfig{
			RefreshInterval: 5,
		},
		UI: UIConfig{
			LogScrollSpeed: 3,
			AltScreen:      boolPtr(true),
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.runlogs/runlogs.log",
		},
	}
}
