package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ryulog/ryulog-go/internal/logfinder"
	"github.com/ryulog/ryulog-go/internal/recent"
	"github.com/ryulog/ryulog-go/internal/safefile"
	"github.com/ryulog/ryulog-go/pkg/ryulog"
	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
	"github.com/ryulog/ryulog-go/pkg/ryulog/signature"
)

// messageFileName is the name chat clients give to long pasted messages.
const messageFileName = "message.txt"

// maxStdinBytes bounds a log read from standard input.
const maxStdinBytes = 16 * 1024 * 1024

var (
	// analyze flags
	analyzeChannel    string
	analyzeFormat     string
	analyzeSignatures []string
	analyzeHeadBytes  int
	analyzeTailBytes  int
	analyzeForce      bool
	analyzeStrict     bool
	analyzeRender     bool
	analyzeJobs       int
	analyzeLogDir     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file...]",
	Short: "Analyze Ryujinx log files",
	Long: `Analyze one or more Ryujinx log files and print a report for each.

Only the head and tail of each file are read, like the support bot does.
With no arguments the newest log in the Ryujinx log directory is used.
Use "-" to read a log from standard input.

Examples:
  # Analyze the latest log (auto-detect log directory)
  ryulog analyze

  # Analyze specific files, four at a time
  ryulog analyze --jobs 4 Ryujinx_1.1.1234_2024-01-15_10-00-00.log message.txt

  # Apply the checks of the general support channel
  ryulog analyze --channel general Ryujinx_*.log

  # Render as markdown in the terminal
  ryulog analyze --format markdown --render

  # Add signatures of known faults
  ryulog analyze --signatures extra.yaml`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeChannel, "channel", "c", "other",
		"Channel the log was posted in: general, pr-testing, other")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "pretty",
		"Output format: json, pretty, markdown")
	analyzeCmd.Flags().StringSliceVarP(&analyzeSignatures, "signatures", "s", nil,
		"Signature YAML files to match in addition to the built-in ones")
	analyzeCmd.Flags().IntVar(&analyzeHeadBytes, "head-bytes", safefile.DefaultHeadBytes,
		"Bytes read from the start of each file")
	analyzeCmd.Flags().IntVar(&analyzeTailBytes, "tail-bytes", safefile.DefaultTailBytes,
		"Bytes read from the end of each file")
	analyzeCmd.Flags().BoolVar(&analyzeForce, "force", false,
		"Analyze files whatever their name")
	analyzeCmd.Flags().BoolVar(&analyzeStrict, "strict", false,
		"Fail on text without any log timestamp")
	analyzeCmd.Flags().BoolVar(&analyzeRender, "render", false,
		"Render markdown output for the terminal")
	analyzeCmd.Flags().IntVarP(&analyzeJobs, "jobs", "j", runtime.NumCPU(),
		"Files analyzed concurrently")
	analyzeCmd.Flags().StringVarP(&analyzeLogDir, "log-dir", "d", "",
		"Ryujinx log directory (auto-detected if not specified)")

	rootCmd.AddCommand(analyzeCmd)
}

// analyzeRequest is everything one analyze run needs besides the files.
type analyzeRequest struct {
	format string
	render bool
	force  bool
	jobs   int
	opts   []ryulog.Option
	stdin  io.Reader
}

// fileResult is the outcome for one input, in argument order.
type fileResult struct {
	path        string
	duplicateOf string
	report      ryulog.Report
	err         error
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !ValidFormats[analyzeFormat] {
		return fmt.Errorf("unknown format: %s", analyzeFormat)
	}
	ch, err := report.ParseChannel(analyzeChannel)
	if err != nil {
		return err
	}
	sets, err := loadSignatureSets(analyzeSignatures)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		latest, err := latestLogFile(analyzeLogDir)
		if err != nil {
			return err
		}
		args = []string{latest}
	}

	req := analyzeRequest{
		format: analyzeFormat,
		render: analyzeRender,
		force:  analyzeForce,
		jobs:   analyzeJobs,
		stdin:  cmd.InOrStdin(),
		opts: []ryulog.Option{
			ryulog.WithChannel(ch),
			ryulog.WithStrict(analyzeStrict),
			ryulog.WithSignatures(sets...),
			ryulog.WithReadLimits(analyzeHeadBytes, analyzeTailBytes),
			ryulog.WithLogger(logger),
		},
	}
	return analyzeFiles(ctx, args, req, cmd.OutOrStdout())
}

// analyzeFiles analyzes paths concurrently and writes the reports in
// argument order. Per-file failures are joined into the returned error.
func analyzeFiles(ctx context.Context, paths []string, req analyzeRequest, out io.Writer) error {
	results := make([]fileResult, len(paths))
	seen := recent.New[string](recent.DefaultCapacity)
	for i, p := range paths {
		results[i].path = p
		// Pasted logs share generic names like message.txt, so only
		// session log names identify a file.
		if p == "-" || !logfinder.IsLogFileName(p) {
			continue
		}
		key := filepath.Base(p)
		if !seen.Add(key, p) {
			first, _ := seen.Lookup(key)
			results[i].duplicateOf = first
		}
	}

	jobs := req.jobs
	if jobs < 1 {
		jobs = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range results {
		res := &results[i]
		if res.duplicateOf != "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				res.err = err
				return nil
			}
			res.report, res.err = analyzeOne(res.path, req)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, res := range results {
		if res.duplicateOf != "" {
			logger.Info("skipping duplicate log", "file", res.path, "first", res.duplicateOf)
			if err := OutputDuplicate(req.format, res.path, res.duplicateOf, out); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
			continue
		}
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.path, res.err))
			// Strict mode still carries the default report.
			if !errors.Is(res.err, report.ErrNoTimestampFound) {
				continue
			}
		}
		if err := OutputReport(req.format, res.report, out, outputOptions{File: res.path, Render: req.render}); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	return errors.Join(errs...)
}

// analyzeOne analyzes a single input. "-" reads standard input.
func analyzeOne(path string, req analyzeRequest) (ryulog.Report, error) {
	if path == "-" {
		return analyzeReader(req.stdin, req.opts)
	}
	if !req.force && !isAcceptedLogName(filepath.Base(path)) {
		return ryulog.Report{}, fmt.Errorf("not a Ryujinx log file name (use --force to analyze anyway)")
	}
	return ryulog.AnalyzeFile(path, req.opts...)
}

func analyzeReader(r io.Reader, opts []ryulog.Option) (ryulog.Report, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxStdinBytes+1))
	if err != nil {
		return ryulog.Report{}, fmt.Errorf("reading stdin: %w", err)
	}
	if len(data) > maxStdinBytes {
		return ryulog.Report{}, fmt.Errorf("stdin too large (max %d bytes)", maxStdinBytes)
	}
	if !utf8.Valid(data) {
		return ryulog.Report{}, ryulog.ErrInvalidEncoding
	}
	return ryulog.Analyze(string(data), opts...)
}

// isAcceptedLogName reports whether name looks like a log a user would post.
func isAcceptedLogName(name string) bool {
	return name == messageFileName || logfinder.IsLogFileName(name)
}

func latestLogFile(dir string) (string, error) {
	logDir, err := logfinder.FindLogDir(dir)
	if err != nil {
		return "", err
	}
	return logfinder.FindLatestLogFile(logDir)
}

// loadSignatureSets loads each signature file into a set.
func loadSignatureSets(paths []string) ([]*signature.Set, error) {
	sets := make([]*signature.Set, 0, len(paths))
	for i, path := range paths {
		set, err := signature.NewSetFromFile(path)
		if err != nil {
			// Error from signature package is already sanitized (no path)
			return nil, fmt.Errorf("signature file %d: %w", i+1, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}
