package interfaces

import (
	"context"
	"io"
	"os"
	"time"
)

// CommandExecutor runs external administrative tools
type CommandExecutor interface {
	// Execute runs the command and fails on a non-zero exit status
	Execute(ctx context.Context, command string, args ...string) ([]byte, error)

	// ExecuteWithTimeout is Execute bounded by timeout; a non-positive timeout means no bound
	ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error)
}

// File is a writable file handle created through FileSystem
type File interface {
	io.Writer
	Sync() error
	Close() error
}

// FileSystem abstracts the file operations the resolver writer and backup service need
type FileSystem interface {
	// ReadFile reads a whole file
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories
	WriteFile(path string, data []byte, perm os.FileMode) error

	// Create opens path for writing, truncating an existing file
	Create(path string, perm os.FileMode) (File, error)

	// Rename atomically replaces newPath with oldPath
	Rename(oldPath, newPath string) error

	// SyncDir flushes a directory so a completed rename survives a crash
	SyncDir(path string) error

	// Exists reports whether path exists
	Exists(path string) bool

	// MkdirAll creates a directory tree
	MkdirAll(path string, perm os.FileMode) error

	// Remove deletes a file
	Remove(path string) error

	// ListFiles lists the regular files in a directory
	ListFiles(path string) ([]string, error)
}

// Clock abstracts time for durations and backup names
type Clock interface {
	Now() time.Time
}
