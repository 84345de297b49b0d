// Package filelock provides the locked, atomically committed output file
// that a merge writes into.
package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the lock on an output path.
var ErrLocked = errors.New("output is locked by another run")

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held by another process.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// AtomicFile is a temporary file that replaces its target only on Commit.
// Readers of the target never see a partially written file.
//
// The process:
// 1. Create a temporary file in the same directory as the target
// 2. Stream content into the temporary file
// 3. Rename the temporary file to the target path (atomic operation)
//
// If Abort is called instead, the original file (if it exists) remains unchanged.
type AtomicFile struct {
	file *os.File
	path string
	done bool
}

// CreateAtomic creates the temporary file for path, creating parent directories as needed.
// The committed file keeps the permissions of an existing target, or 0644.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Same directory as target so the rename stays on one filesystem
	tempFile, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	return &AtomicFile{file: tempFile, path: path}, nil
}

// Write writes to the temporary file.
func (af *AtomicFile) Write(p []byte) (int, error) {
	return af.file.Write(p)
}

// Commit syncs the temporary file and renames it over the target.
func (af *AtomicFile) Commit() error {
	if af.done {
		return fmt.Errorf("atomic file %s already finished", af.path)
	}
	af.done = true
	tempPath := af.file.Name()

	if err := af.file.Sync(); err != nil {
		af.discard()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := af.file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tempPath, targetMode(af.path)); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, af.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file to %s: %w", af.path, err)
	}

	return nil
}

// Abort discards the temporary file. It is a no-op after Commit or Abort.
func (af *AtomicFile) Abort() {
	if af.done {
		return
	}
	af.done = true
	af.discard()
}

// targetMode returns the permission bits of path, or 0644 when it does not exist.
func targetMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}

func (af *AtomicFile) discard() {
	af.file.Close()
	os.Remove(af.file.Name())
}

// Output is an AtomicFile guarded by a non-blocking lock on "<path>.lock",
// so two runs cannot write the same output at once.
// The lock file stays on disk; removing it would let two runs lock
// different inodes under the same name.
type Output struct {
	*AtomicFile
	lock *FileLock
}

// CreateOutput locks path and opens its temporary file.
// Returns ErrLocked if another process holds the lock.
func CreateOutput(path string) (*Output, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := NewFileLock(path + ".lock")
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	af, err := CreateAtomic(path)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	return &Output{AtomicFile: af, lock: lock}, nil
}

// Commit publishes the output and releases the lock.
func (o *Output) Commit() error {
	err := o.AtomicFile.Commit()
	if uerr := o.release(); uerr != nil && err == nil {
		err = uerr
	}
	return err
}

// Abort discards the output and releases the lock.
// It is a no-op once Commit or Abort has run.
func (o *Output) Abort() {
	if o.done {
		return
	}
	o.AtomicFile.Abort()
	o.release()
}

func (o *Output) release() error {
	return o.lock.Unlock()
}
