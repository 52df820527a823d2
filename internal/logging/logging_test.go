package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewEmptyPathIsNop(t *testing.T) {
	l, err := New("", "info")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	l.Info("dropped")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.log")
	l, err := New(path, "debug")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Debug("page turned")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "page turned") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "x.log"), "chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("expected nop logger")
	}
}
