package uelog

import (
	"fmt"
	"log/slog"
	"time"
)

// ParserOption configures NewParser using the functional options pattern.
type ParserOption func(*parserConfig)

type parserConfig struct {
	scanLimit int
	logger    *slog.Logger
}

func defaultParserConfig() *parserConfig {
	return &parserConfig{}
}

func applyParserOptions(opts []ParserOption) *parserConfig {
	cfg := defaultParserConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithScanLimit bounds the number of lines examined while looking for the
// timezone announcement. When the limit is reached without a match,
// construction fails with an InitError wrapping ErrTimezoneNotFound.
//
// Default is 0: scan the whole stream, matching the engine's behavior of
// announcing the timezone once near the start. A limit is useful when
// probing inputs that may not be Unreal Engine logs at all.
func WithScanLimit(n int) ParserOption {
	return func(c *parserConfig) {
		c.scanLimit = n
	}
}

// WithLogger sets a logger for parser debug output, such as skipped
// header-shaped lines. If logger is nil, logging is disabled (default).
func WithLogger(logger *slog.Logger) ParserOption {
	return func(c *parserConfig) {
		c.logger = logger
	}
}

// ParseOption configures ParseFile and ParseReader.
type ParseOption func(*parseConfig)

type parseConfig struct {
	since     time.Time
	until     time.Time
	scanLimit int
	logger    *slog.Logger
}

func defaultParseConfig() *parseConfig {
	return &parseConfig{}
}

func applyParseOptions(opts []ParseOption) *parseConfig {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithParseSince keeps only records at or after the given time.
func WithParseSince(since time.Time) ParseOption {
	return func(c *parseConfig) {
		c.since = since
	}
}

// WithParseUntil stops reading at the first record at or after the given
// time.
//
// Note: this assumes timestamps in the file are monotonically increasing,
// which holds for a single engine session. Omit the option for guaranteed
// completeness.
func WithParseUntil(until time.Time) ParseOption {
	return func(c *parseConfig) {
		c.until = until
	}
}

// WithParseScanLimit bounds the timezone announcement scan, see
// WithScanLimit.
func WithParseScanLimit(n int) ParseOption {
	return func(c *parseConfig) {
		c.scanLimit = n
	}
}

// WithParseLogger sets a logger for debug output during parsing.
func WithParseLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) {
		c.logger = logger
	}
}

// WatchOption configures NewWatcher.
type WatchOption func(*watchConfig)

type watchConfig struct {
	flushInterval time.Duration
	reopen        bool
	poll          bool
	scanLimit     int
	logger        *slog.Logger
}

func defaultWatchConfig() *watchConfig {
	return &watchConfig{
		flushInterval: 2 * time.Second,
		reopen:        true,
	}
}

func applyWatchOptions(opts []WatchOption) *watchConfig {
	cfg := defaultWatchConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (c *watchConfig) validate() error {
	if c.flushInterval <= 0 {
		return fmt.Errorf("flush interval must be positive, got %v", c.flushInterval)
	}
	if c.scanLimit < 0 {
		return fmt.Errorf("scan limit must be non-negative, got %d", c.scanLimit)
	}
	return nil
}

// WithFlushInterval sets how long an open record may sit without new lines
// before it is emitted. A live log writes its final record with no following
// header to terminate it, so the watcher flushes on quiescence instead.
// Default: 2 seconds.
func WithFlushInterval(interval time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.flushInterval = interval
	}
}

// WithReopen controls whether the watcher re-attaches when the log file is
// rotated or recreated. Default: true.
func WithReopen(reopen bool) WatchOption {
	return func(c *watchConfig) {
		c.reopen = reopen
	}
}

// WithPoll forces polling instead of inotify-style watching, for
// filesystems without change notification (network mounts). Default: false.
func WithPoll(poll bool) WatchOption {
	return func(c *watchConfig) {
		c.poll = poll
	}
}

// WithWatchScanLimit bounds the timezone announcement scan, see
// WithScanLimit.
func WithWatchScanLimit(n int) WatchOption {
	return func(c *watchConfig) {
		c.scanLimit = n
	}
}

// WithWatchLogger sets a logger for watcher debug output.
// If logger is nil, logging is disabled (default).
func WithWatchLogger(logger *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		c.logger = logger
	}
}
