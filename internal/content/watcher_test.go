package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestIndexFor(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"/x/pages/slide01.md", 0, true},
		{"/x/pages/slide16.md", 15, true},
		{"/x/story.yaml", AllPages, true},
		{"/x/pages/slide00.md", 0, false},
		{"/x/pages/notes.md", 0, false},
		{"/x/pages/slide01.md~", 0, false},
	}
	for _, tt := range tests {
		got, ok := indexFor(tt.name)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("indexFor(%q) = (%d, %v), want (%d, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestWatcherReportsPageEdits(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "pages"), 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(dir, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	if err := os.WriteFile(filepath.Join(dir, "pages", "slide03.md"), []byte("---\ntitle: x\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case idx := <-w.Changes():
		if idx != 2 {
			t.Errorf("changed index = %d, want 2", idx)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestWatcherCloseWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "pages"), 0o755)
	w, err := NewWatcher(dir, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("expected error for missing dir")
	}
}
