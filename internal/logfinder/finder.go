// Package logfinder provides Ryujinx log directory and file detection.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvLogDir is the environment variable name for specifying log directory.
const EnvLogDir = "RYULOG_LOGDIR"

// LogFilePattern matches the files Ryujinx writes, one per emulator session.
const LogFilePattern = "Ryujinx_*.log"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles     = errors.New("no log files found")
)

// DefaultLogDirs returns candidate Ryujinx log directories in priority order.
//
// Ryujinx keeps logs under its data directory: %APPDATA%\Ryujinx on
// Windows, ~/.config/Ryujinx on Linux and ~/Library/Application
// Support/Ryujinx on macOS. A portable install keeps them next to the
// executable, which cannot be detected here.
func DefaultLogDirs() []string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return nil
	}
	return []string{
		filepath.Join(configDir, "Ryujinx", "Logs"),
		filepath.Join(configDir, "Ryujinx", "portable", "Logs"),
	}
}

// FindLogDir returns the Ryujinx log directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. RYULOG_LOGDIR environment variable
//  3. Auto-detect from DefaultLogDirs()
//
// An explicit or environment directory only has to exist; auto-detected
// candidates must also contain at least one log file.
// Returns ErrLogDirNotFound if no valid directory is found.
// The returned path has symlinks resolved for consistency.
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveLogDir(explicit, false); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory does not exist", ErrLogDirNotFound)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveLogDir(envDir, false); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	for _, dir := range DefaultLogDirs() {
		if resolved := resolveLogDir(dir, true); resolved != "" {
			return resolved, nil
		}
	}

	return "", ErrLogDirNotFound
}

// logCandidate holds a log file path and its cached modification time.
// This avoids race conditions where files are deleted between stat and sort.
type logCandidate struct {
	path    string
	modTime int64
}

// FindLatestLogFile returns the path to the most recently modified
// Ryujinx_*.log file in the given directory.
//
// Returns ErrNoLogFiles if no log files are found.
func FindLatestLogFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, LogFilePattern))
	if err != nil {
		return "", fmt.Errorf("globbing log files: %w", err)
	}

	// Stat files once and cache results to avoid race conditions
	candidates := make([]logCandidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil {
			// Skip files that can't be stat'd (deleted, permission issues, etc.)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, logCandidate{
			path:    m,
			modTime: info.ModTime().UnixNano(),
		})
	}

	if len(candidates) == 0 {
		return "", ErrNoLogFiles
	}

	// Newest first; equal times fall back to the name, which embeds the
	// session start time.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modTime != candidates[j].modTime {
			return candidates[i].modTime > candidates[j].modTime
		}
		return candidates[i].path > candidates[j].path
	})

	return candidates[0].path, nil
}

// IsLogFileName reports whether name looks like a Ryujinx session log.
func IsLogFileName(name string) bool {
	ok, _ := filepath.Match(LogFilePattern, filepath.Base(name))
	return ok
}

// resolveLogDir resolves symlinks and validates the directory.
// Returns the resolved path if valid, empty string otherwise.
func resolveLogDir(dir string, requireLogs bool) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	// Resolve symlinks (works with Windows Junctions in Go 1.20+)
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return ""
	}

	if requireLogs {
		matches, err := filepath.Glob(filepath.Join(resolved, LogFilePattern))
		if err != nil || len(matches) == 0 {
			return ""
		}
	}
	return resolved
}
