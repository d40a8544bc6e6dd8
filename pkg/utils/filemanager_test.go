package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("filtered_{uuid}", map[string]string{"uuid": "run-1"})
	if name != "filtered_run-1.xlsx" {
		t.Errorf("name = %q", name)
	}

	name = GenerateOutputFileName("", nil)
	if !strings.HasPrefix(name, "filtered_") || !strings.HasSuffix(name, ".xlsx") || strings.Contains(name, "{") {
		t.Errorf("default name = %q", name)
	}
}

func TestWriteAndArchive(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(filepath.Join(root, "out"), filepath.Join(root, "archive"), "{uuid}.xlsx")
	if err := fm.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	path, err := fm.WriteOutput([]byte("data"), "abc")
	if err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if path != filepath.Join(root, "out", "abc.xlsx") {
		t.Errorf("path = %q", path)
	}

	archived, err := fm.ArchiveOutputFile(path)
	if err != nil {
		t.Fatalf("ArchiveOutputFile: %v", err)
	}
	if got, _ := os.ReadFile(archived); string(got) != "data" {
		t.Errorf("archived content = %q", got)
	}

	if _, err := fm.ArchiveBytes([]byte("x"), "def"); err != nil {
		t.Fatalf("ArchiveBytes: %v", err)
	}
	if !FileExists(filepath.Join(root, "archive", "def.xlsx")) {
		t.Error("ArchiveBytes did not write def.xlsx")
	}
}

func TestCleanOldArchives(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.xlsx")
	fresh := filepath.Join(dir, "fresh.xlsx")
	for _, p := range []string{old, fresh} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-30 * 24 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	removed, err := CleanOldArchives(dir, 14*24*time.Hour)
	if err != nil {
		t.Fatalf("CleanOldArchives: %v", err)
	}
	if removed != 1 || FileExists(old) || !FileExists(fresh) {
		t.Errorf("removed = %d, old exists = %v, fresh exists = %v", removed, FileExists(old), FileExists(fresh))
	}

	if n, err := CleanOldArchives(filepath.Join(dir, "missing"), time.Hour); err != nil || n != 0 {
		t.Errorf("missing dir: %d, %v", n, err)
	}
}
