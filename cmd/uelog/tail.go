package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/uelog/uelog-go/internal/logfinder"
	"github.com/uelog/uelog-go/pkg/uelog"
	"github.com/uelog/uelog-go/pkg/uelog/rules"
)

var (
	// tail flags
	tailLogDir        string
	tailFile          string
	tailFormat        string
	tailRules         string
	tailFlushInterval string
	tailPoll          bool
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow a live Unreal Engine log and stream records",
	Long: `Follow the log file of a running Unreal Engine session and stream one
structured record per logical entry as it is written. The newest *.log
file in the log directory is followed unless --file names one directly.

Stops on Ctrl-C.

Examples:
  # Follow the newest log of a project
  uelog tail --log-dir MyProject/Saved/Logs

  # Follow a specific file with human-readable output
  uelog tail --file MyProject.log --format pretty

  # Tag crash signatures as they appear
  uelog tail --log-dir Saved/Logs --rules rules.yaml`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().StringVarP(&tailLogDir, "log-dir", "d", "",
		"Log directory to watch (default: $UELOG_LOGDIR)")
	tailCmd.Flags().StringVar(&tailFile, "file", "",
		"Log file to follow directly, skipping directory discovery")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	tailCmd.Flags().StringVar(&tailRules, "rules", "",
		"YAML rule file to match against records")
	tailCmd.Flags().StringVar(&tailFlushInterval, "flush-interval", "2s",
		"Emit an open record after this much quiet time")
	tailCmd.Flags().BoolVar(&tailPoll, "poll", false,
		"Poll for file changes instead of using filesystem notifications")
	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, _ []string) error {
	format := stringSetting(cmd, "format", keyFormat)
	if format == "table" {
		return fmt.Errorf("table format buffers all records and cannot be used with tail")
	}

	flushInterval, err := time.ParseDuration(stringSetting(cmd, "flush-interval", keyFlushInterval))
	if err != nil {
		return fmt.Errorf("invalid --flush-interval: %w", err)
	}

	matcher, err := buildMatcher(stringSetting(cmd, "rules", keyRules))
	if err != nil {
		return err
	}

	printer, err := NewPrinter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	path := tailFile
	if path == "" {
		dir, err := logfinder.FindLogDir(stringSetting(cmd, "log-dir", keyLogDir))
		if err != nil {
			return err
		}
		path, err = logfinder.FindLatestLogFile(dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Watching:", path)
	}

	watcher, err := uelog.NewWatcher(path,
		uelog.WithFlushInterval(flushInterval),
		uelog.WithPoll(tailPoll),
	)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recCh, errCh, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	for recCh != nil || errCh != nil {
		select {
		case rec, ok := <-recCh:
			if !ok {
				recCh = nil
				continue
			}
			var matches []rules.Match
			if matcher != nil {
				matches = matcher.Match(rec)
			}
			if err := printer.Print(rec, matches); err != nil {
				return err
			}

		case werr, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			var initErr *uelog.InitError
			if errors.As(werr, &initErr) {
				return werr
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", werr)
		}
	}
	// Channels close on Ctrl-C; that is a clean shutdown, not an error.
	return nil
}
