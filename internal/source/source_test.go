package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	domdoc "github.com/kailas-cloud/tenantdex/internal/domain/document"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFolderRead(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "second")
	writeFile(t, dir, "a.md", "first")
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	f, err := NewFolder("")
	if err != nil {
		t.Fatal(err)
	}
	docs, err := f.Read(context.Background(), dir, "demo")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].ID() != "a.md" || docs[0].Title() != "a.md" || docs[0].Text() != "first" {
		t.Errorf("docs[0] = %q %q %q", docs[0].ID(), docs[0].Title(), docs[0].Text())
	}
	if docs[1].Tenant() != "demo" {
		t.Errorf("Tenant() = %q", docs[1].Tenant())
	}
}

func TestFolderRead_MissingDir(t *testing.T) {
	f, _ := NewFolder("")
	docs, err := f.Read(context.Background(), filepath.Join(t.TempDir(), "nope"), "demo")
	if err != nil || len(docs) != 0 {
		t.Errorf("Read() = %d docs, %v", len(docs), err)
	}
}

func TestFolderRead_BinaryIsUnparsed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.md"), []byte{0xff, 0xfe}, 0o644); err != nil {
		t.Fatal(err)
	}
	f, _ := NewFolder("")
	docs, err := f.Read(context.Background(), dir, "demo")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Content().Kind() != domdoc.KindUnparsed {
		t.Fatalf("expected one unparsed doc, got %+v", docs)
	}
}

func TestFolderRead_LargeFileKept(t *testing.T) {
	dir := t.TempDir()
	big := strings.Repeat("shipping takes two days ", 10000)
	writeFile(t, dir, "a.md", "first")
	writeFile(t, dir, "big.md", big)

	f, _ := NewFolder("")
	docs, err := f.Read(context.Background(), dir, "demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 || docs[1].ID() != "big.md" || len(docs[1].Text()) != len(big) {
		t.Fatalf("docs = %d", len(docs))
	}
}

func TestNewFolder_BadGlob(t *testing.T) {
	if _, err := NewFolder("[a-"); err == nil {
		t.Error("expected error for malformed glob")
	}
}

func TestIsRelevantEvent(t *testing.T) {
	f, _ := NewFolder("*.md")
	w := &Watcher{folder: f}

	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/d/a.md", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/d/a.md", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/d/a.md", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/d/a.md", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/d/a.txt", Op: fsnotify.Write}, false},
	}
	for _, tc := range tests {
		if got := w.isRelevantEvent(tc.ev); got != tc.want {
			t.Errorf("isRelevantEvent(%v) = %v, want %v", tc.ev, got, tc.want)
		}
	}
}

type countingReloader struct {
	calls atomic.Int32
}

func (r *countingReloader) ReloadSamples(_ context.Context) (int, error) {
	r.calls.Add(1)
	return 1, nil
}

func TestWatcher_ReloadsAfterDebounce(t *testing.T) {
	dir := t.TempDir()
	f, _ := NewFolder("")
	r := &countingReloader{}

	w, err := NewWatcher(dir, f, r, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	writeFile(t, dir, "a.md", "one")
	writeFile(t, dir, "b.md", "two")
	writeFile(t, dir, "ignored.txt", "three")

	deadline := time.Now().Add(2 * time.Second)
	for r.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if r.calls.Load() == 0 {
		t.Fatal("expected a reload after file changes")
	}
	time.Sleep(200 * time.Millisecond)
	if n := r.calls.Load(); n > 2 {
		t.Errorf("expected debounced reloads, got %d", n)
	}
}
