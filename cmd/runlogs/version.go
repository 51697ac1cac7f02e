package main

import (
	"errors"
	"fmt"

	"github.com/justinpbarnett/runlogs/internal/ui/panels"
	"github.com/justinpbarnett/runlogs/internal/update"
	"github.com/spf13/cobra"
)

var versionFlags struct {
	check   bool
	install bool
	repo    string
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "runlogs version %s\n", panels.Version)

		if versionFlags.install {
			rel, err := update.Apply(cmd.Context(), panels.Version, versionFlags.repo)
			if errors.Is(err, update.ErrDevBuild) {
				fmt.Fprintln(out, "Development build, update skipped.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Updated to v%s.\n", rel.Version)
			return nil
		}

		if !versionFlags.check {
			return nil
		}
		if panels.Version == "dev" {
			fmt.Fprintln(out, "Development build, update check skipped.")
			return nil
		}

		rel, err := update.CheckForUpdate(cmd.Context(), panels.Version, versionFlags.repo)
		if err != nil {
			fmt.Fprintf(out, "Update check failed: %v\n", err)
			return nil
		}
		if rel != nil {
			fmt.Fprintf(out, "Update available: v%s. Run \"runlogs version --install\" to install.\n", rel.Version)
		} else {
			fmt.Fprintln(out, "You are up to date.")
		}
		return nil
	},
}

func init() {
	f := versionCmd.Flags()
	f.BoolVar(&versionFlags.check, "check", false, "check GitHub for a newer release")
	f.BoolVar(&versionFlags.install, "install", false, "download and install the latest release")
	f.StringVar(&versionFlags.repo, "repo", update.DefaultRepo, "GitHub repository releases are published under")
	rootCmd.AddCommand(versionCmd)
}
