package ryulog

import (
	"errors"
	"fmt"

	"github.com/ryulog/ryulog-go/internal/logfinder"
)

// Sentinel errors.
var (
	// ErrLogDirNotFound is returned when no Ryujinx log directory can be located.
	ErrLogDirNotFound = logfinder.ErrLogDirNotFound

	// ErrNoLogFiles is returned when the log directory holds no Ryujinx_*.log file.
	ErrNoLogFiles = logfinder.ErrNoLogFiles

	// ErrInvalidEncoding is returned by AnalyzeFile when the file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("log file appears to be invalid")

	// ErrWatcherClosed is returned when Watch is called on a closed watcher.
	ErrWatcherClosed = errors.New("watcher closed")

	// ErrAlreadyWatching is returned when Watch is called twice.
	ErrAlreadyWatching = errors.New("watch already started")
)

// WatchOp identifies the watcher operation that failed.
type WatchOp string

// Watcher operations.
const (
	WatchOpFindLatest WatchOp = "find_latest"
	WatchOpTail       WatchOp = "tail"
	WatchOpRotation   WatchOp = "rotation"
	WatchOpAnalyze    WatchOp = "analyze"
)

// WatchError reports a failure inside a running Watcher.
type WatchError struct {
	Op   WatchOp
	Path string // may be empty
	Err  error
}

func (e *WatchError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("watch %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("watch %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *WatchError) Unwrap() error {
	return e.Err
}
