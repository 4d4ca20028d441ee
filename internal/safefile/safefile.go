// Package safefile opens and reads log files handed to the analyzer by
// users. Only regular files are read, and reads are bounded.
package safefile

import (
	"errors"
	"os"
)

// ErrNotRegularFile is returned for symlinks, FIFOs, devices, sockets and
// directories. A log read from a FIFO could block forever.
var ErrNotRegularFile = errors.New("not a regular file")

// ErrFileChanged is returned when the path was swapped for another file
// between the check and the open.
var ErrFileChanged = errors.New("file changed while opening")

// OpenRegular opens path for reading if it names a regular file.
//
// The path is checked with Lstat first so symlinks are refused, then the
// opened descriptor is compared against that result with os.SameFile.
// Errors for rejected files are *os.PathError values wrapping
// ErrNotRegularFile or ErrFileChanged.
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, &os.PathError{Op: "open", Path: path, Err: ErrNotRegularFile}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, &os.PathError{Op: "open", Path: path, Err: ErrNotRegularFile}
	}
	if !os.SameFile(linkInfo, info) {
		f.Close()
		return nil, nil, &os.PathError{Op: "open", Path: path, Err: ErrFileChanged}
	}
	return f, info, nil
}
