// Package tailer follows a growing log file line by line.
package tailer

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/nxadm/tail"
)

// errBuffer is the buffer size for the error channel.
const errBuffer = 4

// Config configures a Tailer.
type Config struct {
	// FromStart reads the file from the beginning instead of its current end.
	FromStart bool

	// Poll uses polling instead of file system notifications. Needed on
	// file systems without inotify support (network shares, some VMs).
	Poll bool

	// MaxLineSize splits lines longer than this many bytes. 0 = unlimited.
	MaxLineSize int
}

// DefaultConfig returns the default configuration: follow from the end
// using notifications.
func DefaultConfig() Config {
	return Config{}
}

// Tailer streams lines appended to a file.
type Tailer struct {
	t      *tail.Tail
	lines  chan string
	errs   chan error
	cancel context.CancelFunc
	done   chan struct{}

	stopOnce sync.Once
	stopErr  error
}

// New starts following path. The file must exist.
// Lines have trailing carriage returns removed. The Lines and Errors
// channels close when ctx is cancelled or Stop is called; Stop must be
// called in either case to release the file.
func New(ctx context.Context, path string, cfg Config) (*Tailer, error) {
	whence := io.SeekEnd
	if cfg.FromStart {
		whence = io.SeekStart
	}
	t, err := tail.TailFile(path, tail.Config{
		Location:    &tail.SeekInfo{Offset: 0, Whence: whence},
		Follow:      true,
		MustExist:   true,
		Poll:        cfg.Poll,
		MaxLineSize: cfg.MaxLineSize,
		Logger:      tail.DiscardingLogger,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	tr := &Tailer{
		t:      t,
		lines:  make(chan string),
		errs:   make(chan error, errBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go tr.forward(ctx)
	return tr, nil
}

// Lines returns the channel of lines read from the file.
func (tr *Tailer) Lines() <-chan string {
	return tr.lines
}

// Errors returns the channel of read errors.
func (tr *Tailer) Errors() <-chan error {
	return tr.errs
}

// Stop stops following the file and waits for the forwarding goroutine to
// exit. Safe to call multiple times.
func (tr *Tailer) Stop() error {
	tr.stopOnce.Do(func() {
		tr.cancel()
		<-tr.done
		// Unblock a pending send inside tail so Stop can return; Lines is
		// closed when the tail goroutine exits.
		go func() {
			for range tr.t.Lines {
			}
		}()
		tr.stopErr = tr.t.Stop()
		tr.t.Cleanup()
	})
	return tr.stopErr
}

func (tr *Tailer) forward(ctx context.Context) {
	defer close(tr.done)
	defer close(tr.lines)
	defer close(tr.errs)

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-tr.t.Lines:
			if !ok {
				<-tr.t.Dead()
				if err := tr.t.Err(); err != nil {
					tr.sendError(ctx, err)
				}
				return
			}
			if line.Err != nil {
				tr.sendError(ctx, line.Err)
				continue
			}
			select {
			case tr.lines <- strings.TrimRight(line.Text, "\r"):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (tr *Tailer) sendError(ctx context.Context, err error) {
	select {
	case tr.errs <- err:
	case <-ctx.Done():
	default:
		// Drop only if the buffer is full.
	}
}
