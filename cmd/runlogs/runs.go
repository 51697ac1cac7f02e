package main

import (
	"fmt"
	"io"

	"github.com/justinpbarnett/runlogs/internal/run"
	"github.com/justinpbarnett/runlogs/internal/ui/text"
	"github.com/spf13/cobra"
)

var runsFlags struct {
	active bool
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store := run.NewStore()
		b, err := openBackend(cfg, store)
		if err != nil {
			return err
		}
		if err := run.Sync(cmd.Context(), b.catalog, store); err != nil {
			return err
		}
		printRuns(cmd.OutOrStdout(), store.List(), runsFlags.active)
		return nil
	},
}

func init() {
	runsCmd.Flags().BoolVar(&runsFlags.active, "active", false, "only show runs that have not finished")
	rootCmd.AddCommand(runsCmd)
}

func printRuns(w io.Writer, runs []run.Run, activeOnly bool) {
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		text.PadRight("ID", 8), text.PadRight("NAME", 24), text.PadRight("STATE", 13), "CREATED")
	for _, r := range runs {
		if activeOnly && r.IsTerminal() {
			continue
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			text.PadRight(r.ID, 8),
			text.PadRight(text.Truncate(r.Name, 24), 24),
			text.PadRight(string(r.FutureState), 13),
			text.RelativeTime(r.CreatedAt))
	}
}
