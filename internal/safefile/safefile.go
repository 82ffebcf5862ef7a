// Package safefile provides hardened file opening for user-supplied paths.
package safefile

import (
	"errors"
	"os"
)

// ErrNotRegularFile is returned when a path does not point at a regular
// file. Symlinks, FIFOs, devices, sockets and directories are all rejected;
// reading a FIFO as a log file would block forever.
var ErrNotRegularFile = errors.New("not a regular file")

// OpenRegular opens path and verifies it is a regular file, both before
// opening (Lstat, so symlinks are rejected rather than followed) and after
// (Stat on the descriptor, so a swap between the two checks is caught).
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
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
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}
