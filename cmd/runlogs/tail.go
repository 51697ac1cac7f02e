package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/justinpbarnett/runlogs/internal/logging"
	"github.com/justinpbarnett/runlogs/internal/logsource"
	"github.com/justinpbarnett/runlogs/internal/run"
	"github.com/spf13/cobra"
)

var tailFlags struct {
	filter  string
	follow  bool
	lines   int
	numbers bool
}

var tailCmd = &cobra.Command{
	Use:   "tail <run-id>",
	Short: "Print the end of a run's log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		closer, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()

		b, err := openBackend(cfg, run.NewStore())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		q := logsource.Query{
			RunID:    args[0],
			MaxLines: tailFlags.lines,
			Filter:   tailFlags.filter,
		}
		if !cmd.Flags().Changed("lines") {
			q.MaxLines = cfg.Logs.PageSize
		}
		return tailRun(ctx, cmd.OutOrStdout(), b.source, q, tailOptions{
			follow:   tailFlags.follow,
			numbers:  tailFlags.numbers,
			interval: time.Duration(cfg.Logs.FollowInterval) * time.Millisecond,
		})
	},
}

func init() {
	f := tailCmd.Flags()
	f.StringVar(&tailFlags.filter, "filter", "", "only print lines containing this text")
	f.BoolVarP(&tailFlags.follow, "follow", "f", false, "keep printing lines as they are appended")
	f.IntVarP(&tailFlags.lines, "lines", "n", logsource.DefaultMaxLines, "number of lines to print")
	f.BoolVar(&tailFlags.numbers, "line-numbers", false, "prefix each line with its number")
	rootCmd.AddCommand(tailCmd)
}

type tailOptions struct {
	follow   bool
	numbers  bool
	interval time.Duration
}

// tailRun prints the newest page of q and, when follow is set, everything
// appended after it until ctx is done.
func tailRun(ctx context.Context, w io.Writer, src logsource.Source, q logsource.Query, opts tailOptions) error {
	page, err := src.Lines(ctx, q)
	if err != nil {
		return fmt.Errorf("fetch logs for %s: %w", q.RunID, err)
	}
	printLines(w, page.Lines, opts.numbers)
	if len(page.Lines) == 0 && page.InfoMessage != "" && !opts.follow {
		fmt.Fprintln(w, page.InfoMessage)
	}
	if !opts.follow {
		return nil
	}

	q.ForwardCursor = page.ForwardCursor
	q.ReverseCursor = ""

	if f, ok := src.(follower); ok {
		err := f.Follow(ctx, q, func(l logsource.Line) { printLines(w, []logsource.Line{l}, opts.numbers) })
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return pollForward(ctx, w, src, q, opts)
}

// pollForward asks src for newer lines every interval.
func pollForward(ctx context.Context, w io.Writer, src logsource.Source, q logsource.Query, opts tailOptions) error {
	interval := opts.interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		page, err := src.Lines(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch logs for %s: %w", q.RunID, err)
		}
		printLines(w, page.Lines, opts.numbers)
		if page.ForwardCursor != "" {
			q.ForwardCursor = page.ForwardCursor
		}
	}
}

func printLines(w io.Writer, lines []logsource.Line, numbers bool) {
	for _, l := range lines {
		if numbers {
			fmt.Fprintf(w, "%6d  %s\n", l.Number, l.Text)
			continue
		}
		fmt.Fprintln(w, l.Text)
	}
}
