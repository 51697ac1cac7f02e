package config

import (
	"fmt"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency. All checks run and
// failures are collected.
func validate(cfg *Config) error {
	var errs []string

	switch cfg.Source.Kind {
	case SourceFile:
		if cfg.Source.Dir == "" {
			errs = append(errs, "source.dir must be set when source.kind is \"file\"")
		}
	case SourceHTTP:
		if !strings.HasPrefix(cfg.Source.URL, "http://") && !strings.HasPrefix(cfg.Source.URL, "https://") {
			errs = append(errs, fmt.Sprintf("source.url %q must start with http:// or https://", cfg.Source.URL))
		}
	case SourceDemo:
	default:
		errs = append(errs, fmt.Sprintf("source.kind %q must be \"file\", \"http\", or \"demo\"", cfg.Source.Kind))
	}

	switch cfg.Logs.Template {
	case TemplateConcise, TemplateFull:
	default:
		errs = append(errs, fmt.Sprintf("logs.template %q must be \"concise\" or \"full\"", cfg.Logs.Template))
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be \"debug\", \"info\", \"warn\", or \"error\"", cfg.Log.Level))
	}

	if cfg.Source.Timeout <= 0 {
		errs = append(errs, "source.timeout must be positive")
	}
	if cfg.Source.RetryMax < 0 {
		errs = append(errs, "source.retry_max must not be negative")
	}
	if cfg.Logs.PageSize <= 0 {
		errs = append(errs, "logs.page_size must be positive")
	}
	if cfg.Logs.FollowInterval < 100 {
		errs = append(errs, "logs.follow_interval must be at least 100ms")
	}
	if cfg.Catalog.RefreshInterval <= 0 {
		errs = append(errs, "catalog.refresh_interval must be positive")
	}
	if cfg.UI.LogScrollSpeed <= 0 {
		errs = append(errs, "ui.log_scroll_speed must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
