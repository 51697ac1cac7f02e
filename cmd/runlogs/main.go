package main

import (
	"fmt"
	"os"

	"github.com/justinpbarnett/runlogs/internal/config"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	source   string
	dir      string
	url      string
	logLevel string
}

var rootCmd = &cobra.Command{
	Use:          "runlogs",
	Short:        "Browse pipeline run logs in the terminal",
	Long:         "runlogs lists pipeline runs and pages through their logs, newest first.",
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.source, "source", "", "where runs come from: file, http or demo")
	pf.StringVar(&rootFlags.dir, "dir", "", "runs directory for the file source")
	pf.StringVar(&rootFlags.url, "url", "", "server URL for the http source")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the config file chain and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if rootFlags.source != "" {
		cfg.Source.Kind = rootFlags.source
	}
	if rootFlags.dir != "" {
		cfg.Source.Dir = config.ExpandHome(rootFlags.dir)
	}
	if rootFlags.url != "" {
		cfg.Source.URL = rootFlags.url
	}
	if rootFlags.logLevel != "" {
		cfg.Log.Level = rootFlags.logLevel
	}
	switch cfg.Source.Kind {
	case config.SourceFile, config.SourceHTTP, config.SourceDemo:
	default:
		return nil, fmt.Errorf("unknown source %q (want file, http or demo)", cfg.Source.Kind)
	}
	return cfg, nil
}
