package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ryulog/ryulog-go/pkg/ryulog"
	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
)

var (
	// watch flags
	watchLogDir       string
	watchFormat       string
	watchChannel      string
	watchSignatures   []string
	watchPollInterval time.Duration
	watchQuiet        time.Duration
	watchWait         bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Analyze the running emulator's log as it grows",
	Long: `Follow the newest Ryujinx log and print a fresh report each time the
emulator stops writing for a moment. When the emulator starts a new
session, watch switches to the new log file.

Reports are printed as JSON Lines by default, which makes it easy to
process them with tools like jq.

Examples:
  # Watch with default settings (auto-detect log directory)
  ryulog watch

  # Wait for the emulator to create its first log
  ryulog watch --wait

  # Human-readable output
  ryulog watch --format pretty

  # Only print the notes
  ryulog watch | jq '.notes'`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchLogDir, "log-dir", "d", "",
		"Ryujinx log directory (auto-detected if not specified)")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "json",
		"Output format: json, pretty, markdown")
	watchCmd.Flags().StringVarP(&watchChannel, "channel", "c", "other",
		"Channel policy applied to reports: general, pr-testing, other")
	watchCmd.Flags().StringSliceVarP(&watchSignatures, "signatures", "s", nil,
		"Signature YAML files to match in addition to the built-in ones")
	watchCmd.Flags().DurationVar(&watchPollInterval, "poll-interval", 2*time.Second,
		"How often to look for a newer log file")
	watchCmd.Flags().DurationVar(&watchQuiet, "quiet", 2*time.Second,
		"How long the log must stay unchanged before a report is printed")
	watchCmd.Flags().BoolVar(&watchWait, "wait", false,
		"Wait for a log file to appear instead of failing")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !ValidFormats[watchFormat] {
		return fmt.Errorf("unknown format: %s", watchFormat)
	}
	ch, err := report.ParseChannel(watchChannel)
	if err != nil {
		return err
	}
	sets, err := loadSignatureSets(watchSignatures)
	if err != nil {
		return err
	}

	// Create watcher (validates log directory)
	watcher, err := ryulog.NewWatcher(
		ryulog.WithLogDir(watchLogDir),
		ryulog.WithPollInterval(watchPollInterval),
		ryulog.WithQuietPeriod(watchQuiet),
		ryulog.WithWaitForLogs(watchWait),
		ryulog.WithWatchLogger(logger),
		ryulog.WithAnalyzeOptions(
			ryulog.WithChannel(ch),
			ryulog.WithSignatures(sets...),
			ryulog.WithLogger(logger),
		),
	)
	if err != nil {
		return err
	}
	defer watcher.Close()

	reports, errs, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for {
		select {
		case r, ok := <-reports:
			if !ok {
				return nil // Channel closed
			}
			if err := OutputReport(watchFormat, r, out, outputOptions{}); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				return nil // Channel closed
			}
			logger.Warn("watch error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
