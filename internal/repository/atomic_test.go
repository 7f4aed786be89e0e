package repository

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyOnWriteTx_NewOutputDir(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "outputs")

	tx := NewCopyOnWriteTx(baseDir)
	if err := tx.Begin(); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if _, err := os.Stat(tx.tempDir); err != nil {
		t.Errorf("staging directory not created: %v", err)
	}

	content := []byte("{}\n")
	if err := tx.WriteFile("test_pack.json", content); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(baseDir, "test_pack.json"))
	if err != nil {
		t.Fatalf("failed to read committed file: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("committed content = %q, want %q", data, content)
	}
	if _, err := os.Stat(tx.tempDir); !os.IsNotExist(err) {
		t.Errorf("staging directory not cleaned up")
	}
}

func TestCopyOnWriteTx_ExistingOutputDir(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "outputs")
	if err := os.MkdirAll(filepath.Join(baseDir, "archive"), 0o755); err != nil {
		t.Fatalf("failed to create output directory: %v", err)
	}
	writeFile(t, filepath.Join(baseDir, "test_pack.md"), "old pack")
	writeFile(t, filepath.Join(baseDir, "archive", "notes.txt"), "keep me")

	tx := NewCopyOnWriteTx(baseDir)
	if err := tx.Begin(); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	if staged := readFile(t, filepath.Join(tx.tempDir, "test_pack.md")); staged != "old pack" {
		t.Errorf("staged copy = %q, want old pack", staged)
	}

	if err := tx.WriteFile("test_pack.md", []byte("new pack")); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	// Live directory is untouched until commit.
	if got := readFile(t, filepath.Join(baseDir, "test_pack.md")); got != "old pack" {
		t.Errorf("live file changed before commit: %q", got)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	if got := readFile(t, filepath.Join(baseDir, "test_pack.md")); got != "new pack" {
		t.Errorf("committed file = %q, want new pack", got)
	}
	if got := readFile(t, filepath.Join(baseDir, "archive", "notes.txt")); got != "keep me" {
		t.Errorf("unrelated file lost: %q", got)
	}

	matches, _ := filepath.Glob(baseDir + ".backup.*")
	if len(matches) != 0 {
		t.Errorf("backup directory left behind: %v", matches)
	}
}

func TestCopyOnWriteTx_Rollback(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "outputs")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(baseDir, "test_pack.json"), "original")

	tx := NewCopyOnWriteTx(baseDir)
	if err := tx.Begin(); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if err := tx.WriteFile("test_pack.json", []byte("modified")); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}

	if got := readFile(t, filepath.Join(baseDir, "test_pack.json")); got != "original" {
		t.Errorf("rollback changed live file: %q", got)
	}
	if _, err := os.Stat(tx.tempDir); !os.IsNotExist(err) {
		t.Error("staging directory not removed by rollback")
	}
}

func TestCopyOnWriteTx_CommittedTransactionIsFinal(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "outputs")

	tx := NewCopyOnWriteTx(baseDir)
	if err := tx.Begin(); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}

	if err := tx.Commit(); err != ErrCommitted {
		t.Errorf("second Commit() = %v, want ErrCommitted", err)
	}
	if err := tx.WriteFile("x", nil); err != ErrCommitted {
		t.Errorf("WriteFile() after commit = %v, want ErrCommitted", err)
	}
	if err := tx.Rollback(); err == nil {
		t.Error("Rollback() after commit should fail")
	}
}

func TestCopyOnWriteTx_BeginRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputs")
	writeFile(t, path, "not a directory")

	if err := NewCopyOnWriteTx(path).Begin(); err == nil {
		t.Fatal("Begin() should fail when the output path is a file")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
