package ryulog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ryulog/ryulog-go/internal/logfinder"
	"github.com/ryulog/ryulog-go/internal/tailer"
)

// watcherErrBuffer bounds the number of pending watch errors.
const watcherErrBuffer = 16

// Watcher follows the newest Ryujinx log and emits a fresh Report each
// time the log has grown and then stayed quiet for the configured period.
type Watcher struct {
	cfg    watchConfig // fixed at construction
	logDir string
	log    *slog.Logger

	mu       sync.Mutex
	closed   bool
	cancel   context.CancelFunc // stops the run loop
	doneCh   chan struct{}      // closed when the run loop returns
	watching bool               // set by the first Watch call
}

// NewWatcher validates opts and resolves the log directory.
// Nothing runs until Watch is called.
//
// Example:
//
//	w, err := ryulog.NewWatcher(
//	    ryulog.WithLogDir("/home/me/.config/Ryujinx/Logs"),
//	    ryulog.WithAnalyzeOptions(ryulog.WithChannel(report.ChannelGeneral)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reports, errs, err := w.Watch(ctx)
func NewWatcher(opts ...WatchOption) (*Watcher, error) {
	cfg := applyWatchOptions(opts)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	logDir, err := logfinder.FindLogDir(cfg.logDir)
	if err != nil {
		return nil, fmt.Errorf("finding log directory: %w", err)
	}

	log := cfg.logger
	if log == nil {
		log = discardLogger
	}

	return &Watcher{
		cfg:    *cfg,
		logDir: logDir,
		log:    log,
	}, nil
}

// Watch starts following the newest log and returns the report and error
// streams. Both channels are closed when ctx ends, when Close is called, or
// after an error the watcher cannot recover from.
//
// A Watcher can be started once: a second call returns ErrAlreadyWatching,
// and a call after Close returns ErrWatcherClosed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Report, <-chan error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, nil, ErrWatcherClosed
	}
	if w.watching {
		return nil, nil, ErrAlreadyWatching
	}
	w.watching = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{})

	reportCh := make(chan Report)
	errCh := make(chan error, watcherErrBuffer)

	go w.run(ctx, reportCh, errCh)

	return reportCh, errCh, nil
}

// Close stops the run loop and waits for it to return.
// Calling it again is a no-op.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	if w.cancel != nil {
		w.cancel()
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, reportCh chan<- Report, errCh chan<- error) {
	defer close(w.doneCh)
	defer close(reportCh)
	defer close(errCh)

	logFile, err := w.findLogFileWithWait(ctx, errCh)
	if err != nil {
		return
	}
	w.log.Debug("found latest log file", "path", logFile)

	// A report needs the session header, so always read from the start.
	cfg := tailer.DefaultConfig()
	cfg.FromStart = true
	t, err := tailer.New(ctx, logFile, cfg)
	if err != nil {
		sendError(ctx, errCh, &WatchError{Op: WatchOpTail, Path: logFile, Err: err})
		return
	}
	defer func() { _ = t.Stop() }()

	buf := newLineBuffer(w.cfg.maxBufferBytes)
	dirty := false

	quiet := time.NewTimer(w.cfg.quietPeriod)
	quiet.Stop()
	defer quiet.Stop()

	rotationTicker := time.NewTicker(w.cfg.pollInterval)
	defer rotationTicker.Stop()

	currentFile := logFile

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.Lines():
			if !ok {
				return
			}
			buf.Add(line)
			dirty = true
			quiet.Reset(w.cfg.quietPeriod)
		case err, ok := <-t.Errors():
			if !ok {
				return
			}
			sendError(ctx, errCh, &WatchError{Op: WatchOpTail, Path: currentFile, Err: err})
		case <-quiet.C:
			if !dirty {
				continue
			}
			dirty = false
			if !w.emit(ctx, buf, currentFile, reportCh, errCh) {
				return
			}
		case <-rotationTicker.C:
			newFile, err := logfinder.FindLatestLogFile(w.logDir)
			if err != nil {
				sendError(ctx, errCh, &WatchError{Op: WatchOpRotation, Err: err})
				continue
			}
			if newFile == currentFile {
				continue
			}
			// New emulator session. Flush what the old one had first.
			w.log.Debug("new session log detected", "from", currentFile, "to", newFile)
			if dirty {
				dirty = false
				if !w.emit(ctx, buf, currentFile, reportCh, errCh) {
					return
				}
			}
			next, err := switchTailer(ctx, t, newFile, cfg)
			if err != nil {
				// Keep following the old file; the next tick retries.
				sendError(ctx, errCh, &WatchError{Op: WatchOpTail, Path: newFile, Err: err})
				continue
			}
			t = next
			currentFile = newFile
			buf.Reset()
			quiet.Stop()
		}
	}
}

// switchTailer opens path and only then stops cur. On failure cur is
// left running and returned unchanged.
func switchTailer(ctx context.Context, cur *tailer.Tailer, path string, cfg tailer.Config) (*tailer.Tailer, error) {
	next, err := tailer.New(ctx, path, cfg)
	if err != nil {
		return cur, err
	}
	_ = cur.Stop()
	return next, nil
}

// emit analyzes the buffer and sends the report. It returns false when
// ctx was cancelled before the report could be delivered.
func (w *Watcher) emit(ctx context.Context, buf *lineBuffer, path string, reportCh chan<- Report, errCh chan<- error) bool {
	r, err := Analyze(buf.String(), w.cfg.analyzeOpts...)
	if err != nil {
		sendError(ctx, errCh, &WatchError{Op: WatchOpAnalyze, Path: path, Err: err})
		return true
	}
	w.log.Debug("emitting report", "path", path, "bytes", buf.Len(), "notes", len(r.Notes))
	select {
	case reportCh <- r:
		return true
	case <-ctx.Done():
		return false
	}
}

// findLogFileWithWait returns the newest log, polling for one to appear
// when waiting is enabled. Failures are also reported on errCh.
func (w *Watcher) findLogFileWithWait(ctx context.Context, errCh chan<- error) (string, error) {
	logFile, err := logfinder.FindLatestLogFile(w.logDir)
	if err == nil {
		return logFile, nil
	}
	if !errors.Is(err, ErrNoLogFiles) || !w.cfg.waitForLogs {
		sendError(ctx, errCh, &WatchError{Op: WatchOpFindLatest, Err: err})
		return "", err
	}

	w.log.Debug("no log files found, waiting for logs to appear", "poll_interval", w.cfg.pollInterval)
	ticker := time.NewTicker(w.cfg.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// ctx is done, so sendError would drop this.
			err := ctx.Err()
			select {
			case errCh <- &WatchError{Op: WatchOpFindLatest, Err: err}:
			default:
			}
			return "", err
		case <-ticker.C:
			logFile, err := logfinder.FindLatestLogFile(w.logDir)
			if err == nil {
				w.log.Debug("log file appeared", "path", logFile)
				return logFile, nil
			}
			if !errors.Is(err, ErrNoLogFiles) {
				sendError(ctx, errCh, &WatchError{Op: WatchOpFindLatest, Err: err})
				return "", err
			}
		}
	}
}

// sendError delivers err unless ctx is done first.
func sendError(ctx context.Context, errCh chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case errCh <- err:
	case <-ctx.Done():
	default:
	}
}

// lineBuffer holds log lines up to a byte cap. Once full, the first half
// of the cap is frozen as the head and the rest holds the most recent
// lines, the same shape as a head/tail read of a file.
type lineBuffer struct {
	max       int
	head      []string
	headBytes int
	headFull  bool
	tail      []string
	tailBytes int
}

func newLineBuffer(max int) *lineBuffer {
	return &lineBuffer{max: max}
}

// Add appends a line, dropping the oldest tail lines when over the cap.
// A single line larger than the remaining space is still kept.
func (b *lineBuffer) Add(line string) {
	n := len(line) + 1
	if !b.headFull {
		if b.headBytes+n <= b.max/2 {
			b.head = append(b.head, line)
			b.headBytes += n
			return
		}
		b.headFull = true
	}
	b.tail = append(b.tail, line)
	b.tailBytes += n
	for b.headBytes+b.tailBytes > b.max && len(b.tail) > 1 {
		b.tailBytes -= len(b.tail[0]) + 1
		b.tail[0] = ""
		b.tail = b.tail[1:]
	}
}

// Len returns the buffered size in bytes, counting one newline per line.
func (b *lineBuffer) Len() int {
	return b.headBytes + b.tailBytes
}

// String joins the buffered lines with newlines.
func (b *lineBuffer) String() string {
	var sb strings.Builder
	sb.Grow(b.Len())
	for _, l := range b.head {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	for _, l := range b.tail {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Reset empties the buffer for a new session.
func (b *lineBuffer) Reset() {
	*b = lineBuffer{max: b.max}
}
