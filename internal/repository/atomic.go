package repository

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ErrCommitted is returned by operations on a finished transaction.
var ErrCommitted = errors.New("transaction already committed")

// CopyOnWriteTx stages an output directory next to the real one and swaps
// it in on commit. Readers of the output directory either see the previous
// pack or the new one, never a half-written mix.
type CopyOnWriteTx struct {
	baseDir   string // Output directory, e.g. data/outputs
	tempDir   string // Staging directory <base>.tmp.<nanos>
	backupDir string // Previous contents <base>.backup.<nanos> during the swap
	committed bool
}

// NewCopyOnWriteTx creates a transaction for baseDir.
func NewCopyOnWriteTx(baseDir string) *CopyOnWriteTx {
	baseDir = filepath.Clean(baseDir)
	stamp := time.Now().UnixNano()
	return &CopyOnWriteTx{
		baseDir:   baseDir,
		tempDir:   fmt.Sprintf("%s.tmp.%d", baseDir, stamp),
		backupDir: fmt.Sprintf("%s.backup.%d", baseDir, stamp),
	}
}

// Begin creates the staging directory, seeded with a copy of the current
// output directory when one exists. Files unrelated to the pack survive
// the swap.
func (tx *CopyOnWriteTx) Begin() error {
	info, err := os.Stat(tx.baseDir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(tx.tempDir, 0o755); err != nil {
			return fmt.Errorf("create staging directory: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("stat output directory: %w", err)
	case !info.IsDir():
		return fmt.Errorf("output path %s is not a directory", tx.baseDir)
	}

	if err := copyDirRecursive(tx.baseDir, tx.tempDir); err != nil {
		_ = os.RemoveAll(tx.tempDir)
		return fmt.Errorf("copy output directory: %w", err)
	}
	return nil
}

// WriteFile writes content below the staging directory.
func (tx *CopyOnWriteTx) WriteFile(relativePath string, content []byte) error {
	if tx.committed {
		return ErrCommitted
	}

	fullPath := filepath.Join(tx.tempDir, relativePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Commit swaps the staging directory into place. If the second rename
// fails the previous directory is restored.
func (tx *CopyOnWriteTx) Commit() error {
	if tx.committed {
		return ErrCommitted
	}

	baseExists := true
	if _, err := os.Stat(tx.baseDir); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat output directory: %w", err)
		}
		baseExists = false
	}

	if !baseExists {
		if err := os.Rename(tx.tempDir, tx.baseDir); err != nil {
			return fmt.Errorf("commit output directory (new): %w", err)
		}
		tx.committed = true
		return nil
	}

	if err := os.Rename(tx.baseDir, tx.backupDir); err != nil {
		return fmt.Errorf("backup output directory: %w", err)
	}
	if err := os.Rename(tx.tempDir, tx.baseDir); err != nil {
		if rollbackErr := os.Rename(tx.backupDir, tx.baseDir); rollbackErr != nil {
			return fmt.Errorf("commit failed and rollback failed: commit error: %w, rollback error: %v", err, rollbackErr)
		}
		return fmt.Errorf("commit output directory (rolled back): %w", err)
	}

	// A leftover backup does not invalidate the commit.
	_ = os.RemoveAll(tx.backupDir)

	tx.committed = true
	return nil
}

// Rollback discards the staging directory.
func (tx *CopyOnWriteTx) Rollback() error {
	if tx.committed {
		return fmt.Errorf("cannot rollback committed transaction")
	}
	if err := os.RemoveAll(tx.tempDir); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// copyDirRecursive copies a tree with real file copies. Hard links would
// let staged writes leak into the live directory before commit.
func copyDirRecursive(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDirRecursive(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("copy contents: %w", err)
	}
	return dstFile.Close()
}
