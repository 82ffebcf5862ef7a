// Package logfinder locates Unreal Engine log files on disk.
//
// Unlike a fixed per-user location, engine logs live under each project's
// Saved/Logs directory, so discovery is driven by an explicit path or the
// environment rather than OS defaults.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvLogDir is the environment variable naming the log directory.
const EnvLogDir = "UELOG_LOGDIR"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles     = errors.New("no log files found")
)

// FindLogDir returns the log directory to read from.
//
// Priority:
//  1. explicit (if non-empty), typically <Project>/Saved/Logs
//  2. UELOG_LOGDIR environment variable
//
// Returns ErrLogDirNotFound when neither resolves to a directory
// containing log files. The returned path has symlinks resolved.
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveLogDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory is invalid or contains no log files", ErrLogDirNotFound)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveLogDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	return "", fmt.Errorf("%w: pass a directory or set %s", ErrLogDirNotFound, EnvLogDir)
}

// logCandidate caches a file's modification time so files deleted between
// stat and sort cannot skew the ordering.
type logCandidate struct {
	path    string
	modTime int64
}

// FindLatestLogFile returns the most recently modified *.log file in dir.
// The engine renames older sessions to *-backup-*.log, so the newest
// plain .log is the current session.
//
// Returns ErrNoLogFiles when the directory has no log files.
func FindLatestLogFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return "", fmt.Errorf("globbing log files: %w", err)
	}
	if len(matches) == 0 {
		return "", ErrNoLogFiles
	}

	candidates := make([]logCandidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil || !info.Mode().IsRegular() {
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

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime > candidates[j].modTime
	})
	return candidates[0].path, nil
}

// resolveLogDir resolves symlinks and verifies the directory holds at
// least one log file. Returns "" when invalid.
func resolveLogDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return ""
	}

	matches, err := filepath.Glob(filepath.Join(resolved, "*.log"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	return resolved
}
