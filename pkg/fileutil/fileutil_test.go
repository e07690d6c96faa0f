package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	if Exists(path) {
		t.Error("Exists() = true before creation")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Error("Exists() = false after creation")
	}
}

func TestWriteTmpThenMove(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "nested", "results.parquet")

	var sawTmp string
	err := WriteTmpThenMove(outPath, func(tmpPath string) error {
		sawTmp = tmpPath
		if Exists(outPath) {
			t.Error("output visible before move")
		}
		return os.WriteFile(tmpPath, []byte("payload"), 0o644)
	})
	if err != nil {
		t.Fatalf("WriteTmpThenMove error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q, want %q", data, "payload")
	}
	if Exists(sawTmp) {
		t.Error("temp file left behind")
	}
}

func TestWriteTmpThenMoveError(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "results.parquet")
	if err := os.WriteFile(outPath, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	var tmp string
	err := WriteTmpThenMove(outPath, func(tmpPath string) error {
		tmp = tmpPath
		_ = os.WriteFile(tmpPath, []byte("partial"), 0o644)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if Exists(tmp) {
		t.Error("temp file not cleaned up")
	}
	data, _ := os.ReadFile(outPath)
	if string(data) != "old" {
		t.Errorf("existing output modified: %q", data)
	}
}
