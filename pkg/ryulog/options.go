package ryulog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ryulog/ryulog-go/internal/safefile"
	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
	"github.com/ryulog/ryulog-go/pkg/ryulog/signature"
)

// Option configures Analyze and AnalyzeFile using the functional options pattern.
type Option func(*config)

// config holds internal configuration for one analysis.
type config struct {
	channel    report.Channel
	strict     bool
	signatures *signature.Set
	logger     *slog.Logger
	headBytes  int
	tailBytes  int
}

// defaultConfig returns a config with sensible defaults.
func defaultConfig() *config {
	return &config{
		channel:    report.ChannelOther,
		signatures: signature.Builtin(),
		headBytes:  safefile.DefaultHeadBytes,
		tailBytes:  safefile.DefaultTailBytes,
	}
}

// applyOptions applies functional options to a config.
func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks for invalid option values.
func (c *config) validate() error {
	if c.channel < report.ChannelOther || c.channel > report.ChannelPRTesting {
		return fmt.Errorf("unknown channel %d", int(c.channel))
	}
	if c.headBytes < 0 {
		return fmt.Errorf("head bytes must be non-negative, got %d", c.headBytes)
	}
	if c.tailBytes < 0 {
		return fmt.Errorf("tail bytes must be non-negative, got %d", c.tailBytes)
	}
	if c.headBytes == 0 && c.tailBytes == 0 {
		return fmt.Errorf("head and tail bytes cannot both be zero")
	}
	return nil
}

// WithChannel sets the kind of channel the log was posted to.
// Version policy notes are only raised for report.ChannelGeneral.
// Default: report.ChannelOther.
func WithChannel(ch report.Channel) Option {
	return func(c *config) {
		c.channel = ch
	}
}

// WithStrict makes Analyze return report.ErrNoTimestampFound when the input
// has no log body. The best-effort report is returned alongside the error.
// Default: false.
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// WithSignatures adds fault signatures searched after the built-in set.
// A signature whose ID is already built in is ignored.
// Nil sets are skipped.
func WithSignatures(sets ...*signature.Set) Option {
	return func(c *config) {
		c.signatures = signature.Join(append([]*signature.Set{c.signatures}, sets...)...)
	}
}

// WithoutBuiltinSignatures replaces the signature set entirely.
// Pass nil to disable signature matching.
func WithoutBuiltinSignatures(set *signature.Set) Option {
	return func(c *config) {
		c.signatures = set
	}
}

// WithLogger sets a logger for debug output about recovered misses.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithReadLimits sets how many bytes AnalyzeFile reads from the start and
// the end of a file. Default: 35000 head bytes and 6000 tail bytes.
func WithReadLimits(head, tail int) Option {
	return func(c *config) {
		c.headBytes = head
		c.tailBytes = tail
	}
}

// WatchOption configures a Watcher using the functional options pattern.
type WatchOption func(*watchConfig)

// watchConfig holds internal configuration for the watcher.
type watchConfig struct {
	logDir         string
	pollInterval   time.Duration
	quietPeriod    time.Duration
	maxBufferBytes int
	waitForLogs    bool
	logger         *slog.Logger
	analyzeOpts    []Option
}

// DefaultMaxBufferBytes is the default cap on text buffered by a Watcher.
const DefaultMaxBufferBytes = 10 * 1024 * 1024

// defaultWatchConfig returns a watchConfig with sensible defaults.
func defaultWatchConfig() *watchConfig {
	return &watchConfig{
		pollInterval:   2 * time.Second,
		quietPeriod:    2 * time.Second,
		maxBufferBytes: DefaultMaxBufferBytes,
	}
}

// applyWatchOptions applies functional options to a watchConfig.
func applyWatchOptions(opts []WatchOption) *watchConfig {
	cfg := defaultWatchConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks for invalid option combinations.
func (c *watchConfig) validate() error {
	if c.pollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.pollInterval)
	}
	if c.quietPeriod <= 0 {
		return fmt.Errorf("quiet period must be positive, got %v", c.quietPeriod)
	}
	if c.maxBufferBytes <= 0 {
		return fmt.Errorf("max buffer bytes must be positive, got %d", c.maxBufferBytes)
	}
	return applyOptions(c.analyzeOpts).validate()
}

// WithLogDir sets the Ryujinx log directory.
// If not set, auto-detects from the platform's default locations.
// Can also be set via RYULOG_LOGDIR environment variable.
func WithLogDir(dir string) WatchOption {
	return func(c *watchConfig) {
		c.logDir = dir
	}
}

// WithPollInterval sets how often to check for a newer log file.
// Default: 2 seconds.
func WithPollInterval(interval time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.pollInterval = interval
	}
}

// WithQuietPeriod sets how long the log must stay unchanged before a new
// report is emitted. Default: 2 seconds.
func WithQuietPeriod(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.quietPeriod = d
	}
}

// WithMaxBufferBytes caps the text kept for analysis. When the log grows
// past the cap the first half is kept and the rest holds the most recent
// lines. Default: 10MB.
func WithMaxBufferBytes(n int) WatchOption {
	return func(c *watchConfig) {
		c.maxBufferBytes = n
	}
}

// WithWaitForLogs configures whether to wait for a log file to appear.
// When false (default), ErrNoLogFiles is reported immediately if none exist.
func WithWaitForLogs(wait bool) WatchOption {
	return func(c *watchConfig) {
		c.waitForLogs = wait
	}
}

// WithWatchLogger sets a logger for watcher debug output.
// If logger is nil, logging is disabled (default behavior).
func WithWatchLogger(logger *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		c.logger = logger
	}
}

// WithAnalyzeOptions sets the options used for every report the watcher emits.
func WithAnalyzeOptions(opts ...Option) WatchOption {
	return func(c *watchConfig) {
		c.analyzeOpts = append(c.analyzeOpts, opts...)
	}
}
