package repository

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_AcquireRelease(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "outputs.lock")
	lock := NewFileLock(lockPath, "RUN-test")

	require.NoError(t, lock.Acquire())

	data, err := os.ReadFile(lockPath)
	require.NoError(t, err)
	var meta LockFile
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, os.Getpid(), meta.PID)
	assert.Equal(t, "RUN-test", meta.RunID)

	require.NoError(t, lock.Release())
	_, err = os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err))

	// Releasing twice is harmless.
	assert.NoError(t, lock.Release())
}

func TestFileLock_MultipleAcquire(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "outputs.lock")
	lock1 := NewFileLock(lockPath, "RUN-1")
	lock2 := NewFileLock(lockPath, "RUN-2")

	require.NoError(t, lock1.Acquire())
	defer lock1.Release()

	err := lock2.Acquire()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocked))
	assert.Contains(t, err.Error(), "PID")
}

func TestFileLock_LeftoverFileWithoutHolder(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "outputs.lock")
	data, err := json.Marshal(LockFile{PID: 999999, Timestamp: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(lockPath, data, 0o644))

	lock := NewFileLock(lockPath, "RUN-3")
	require.NoError(t, lock.Acquire())
	defer lock.Release()
}

func TestIsStale(t *testing.T) {
	assert.False(t, isStale(&LockFile{PID: os.Getpid(), Timestamp: time.Now()}))
	assert.True(t, isStale(&LockFile{PID: os.Getpid(), Timestamp: time.Now().Add(-2 * staleAfter)}))
}

func TestFileLock_MetadataWriteFailureReleasesLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "outputs.lock")

	orig := writeLockMetadata
	writeLockMetadata = func(*os.File, []byte) error { return errors.New("disk full") }
	failed := NewFileLock(lockPath, "RUN-fail")
	err := failed.Acquire()
	writeLockMetadata = orig

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Nil(t, failed.file)

	next := NewFileLock(lockPath, "RUN-next")
	require.NoError(t, next.Acquire())
	defer next.Release()

	data, err := os.ReadFile(lockPath)
	require.NoError(t, err)
	var meta LockFile
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, "RUN-next", meta.RunID)
}
