package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

// staleAfter bounds how long a lock left by a live process is honored.
const staleAfter = 30 * time.Minute

// ErrLocked reports that another run holds the output lock.
var ErrLocked = errors.New("output directory is locked")

// LockFile is the metadata stored in the lock file.
type LockFile struct {
	PID       int       `json:"pid"`
	Hostname  string    `json:"hostname"`
	RunID     string    `json:"run_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// FileLock serializes writers of one output directory across processes.
type FileLock struct {
	path  string
	runID string
	file  *os.File
}

// NewFileLock creates a lock stored at path.
func NewFileLock(path, runID string) *FileLock {
	return &FileLock{path: path, runID: runID}
}

// Acquire takes the lock without blocking. A lock left by a dead process
// or older than staleAfter is taken over.
func (l *FileLock) Acquire() error {
	return l.acquire(true)
}

func (l *FileLock) acquire(allowSteal bool) error {
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = file.Close()

		existing, readErr := l.readLockFile()
		if readErr == nil && allowSteal && isStale(existing) {
			_ = os.Remove(l.path)
			return l.acquire(false)
		}
		if readErr == nil {
			age := time.Since(existing.Timestamp).Round(time.Second)
			return fmt.Errorf("%w by PID %d (%v ago)", ErrLocked, existing.PID, age)
		}
		return fmt.Errorf("%w: %v", ErrLocked, err)
	}

	hostname, _ := os.Hostname()
	data, err := json.MarshalIndent(LockFile{
		PID:       os.Getpid(),
		Hostname:  hostname,
		RunID:     l.runID,
		Timestamp: time.Now(),
	}, "", "  ")
	if err == nil {
		err = writeLockMetadata(file, data)
	}
	if err != nil {
		unlock(file)
		return err
	}
	l.file = file
	return nil
}

// writeLockMetadata replaces the lock file contents with data.
var writeLockMetadata = func(f *os.File, data []byte) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate lock file: %w", err)
	}
	if _, err := f.WriteAt(data, 0); err != nil {
		return fmt.Errorf("write lock metadata: %w", err)
	}
	return nil
}

func unlock(f *os.File) {
	_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	_ = f.Close()
}

// Release unlocks and removes the lock file.
func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}
	unlock(l.file)
	l.file = nil

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}

func (l *FileLock) readLockFile() (*LockFile, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}
	var lock LockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, err
	}
	return &lock, nil
}

func isStale(lock *LockFile) bool {
	process, err := os.FindProcess(lock.PID)
	if err != nil {
		return true
	}
	// FindProcess always succeeds on Unix; signal 0 probes liveness.
	if err := process.Signal(syscall.Signal(0)); err != nil {
		return true
	}
	return time.Since(lock.Timestamp) > staleAfter
}
