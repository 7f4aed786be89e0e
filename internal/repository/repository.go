// Package repository reads requirement files and writes test packs to disk.
package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Repository owns one output directory.
type Repository struct {
	outDir string
}

// NewRepository creates a repository writing below outDir.
func NewRepository(outDir string) *Repository {
	return &Repository{outDir: filepath.Clean(outDir)}
}

// LockPath returns the lock file guarding the output directory. It sits
// beside the directory because the directory itself is swapped on commit.
func (r *Repository) LockPath() string {
	return r.outDir + ".lock"
}

// WritePack commits every artifact into the output directory in one
// copy-on-write transaction and returns the written paths, sorted. The
// directory is created when absent. On error nothing is changed.
func (r *Repository) WritePack(runID string, artifacts map[string][]byte) ([]string, error) {
	if err := ensureParent(r.outDir); err != nil {
		return nil, err
	}

	lock := NewFileLock(r.LockPath(), runID)
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	sort.Strings(names)

	tx := NewCopyOnWriteTx(r.outDir)
	if err := tx.Begin(); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	for _, name := range names {
		if err := tx.WriteFile(name, artifacts[name]); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(r.outDir, name)
	}
	return paths, nil
}

func ensureParent(dir string) error {
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", dir, err)
	}
	return nil
}
