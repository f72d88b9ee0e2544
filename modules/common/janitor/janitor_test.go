package janitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func seedBundle(t *testing.T, baseDir, id string, age time.Duration) {
	t.Helper()
	dir := filepath.Join(baseDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "original.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(dir, stamp, stamp); err != nil {
		t.Fatal(err)
	}
}

func TestSweepRemovesExpiredBundles(t *testing.T) {
	dir := t.TempDir()
	seedBundle(t, dir, "old-1", 3*time.Hour)
	seedBundle(t, dir, "old-2", 48*time.Hour)
	seedBundle(t, dir, "fresh", 10*time.Minute)

	j := New(dir, time.Hour)
	removed, err := j.Sweep(time.Now())
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	if _, err := os.Stat(filepath.Join(dir, "old-1")); !os.IsNotExist(err) {
		t.Error("expired bundle old-1 still present")
	}
	if _, err := os.Stat(filepath.Join(dir, "fresh")); err != nil {
		t.Errorf("fresh bundle removed: %v", err)
	}
}

func TestSweepIgnoresLooseFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stray.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-72 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	j := New(dir, time.Hour)
	removed, err := j.Sweep(time.Now())
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("loose file removed: %v", err)
	}
}

func TestSweepMissingBaseDir(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "never-created"), time.Hour)
	removed, err := j.Sweep(time.Now())
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
