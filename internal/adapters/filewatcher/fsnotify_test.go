package filewatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

func TestNormalizeExtensions(t *testing.T) {
	got := normalizeExtensions([]string{"PDF", " .Docx"})
	if len(got) != 2 || got[0] != ".pdf" || got[1] != ".docx" {
		t.Errorf("unexpected extensions: %v", got)
	}
	if def := normalizeExtensions(nil); len(def) != 1 || def[0] != ".pdf" {
		t.Errorf("expected .pdf default, got %v", def)
	}
}

func TestFileOperation(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want ports.FileOperation
		ok   bool
	}{
		{fsnotify.Create, ports.FileCreated, true},
		{fsnotify.Create | fsnotify.Write, ports.FileCreated, true},
		{fsnotify.Write, ports.FileModified, true},
		{fsnotify.Remove, ports.FileDeleted, true},
		{fsnotify.Rename, ports.FileDeleted, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := fileOperation(tt.op)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("fileOperation(%v) = %v, %v", tt.op, got, ok)
		}
	}
}

func TestFSNotifyWatcher_ReportsNewPDF(t *testing.T) {
	dir := t.TempDir()

	watcher, err := NewFSNotifyWatcher([]string{"pdf"}, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	events, err := watcher.Watch(ctx, dir)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	go func() {
		time.Sleep(100 * time.Millisecond)
		os.WriteFile(filepath.Join(dir, "Week1.PDF"), []byte("%PDF-"), 0644)
	}()

	select {
	case event := <-events:
		if event.Operation != ports.FileCreated {
			t.Errorf("expected create event, got %v", event.Operation)
		}
		if filepath.Base(event.Path) != "Week1.PDF" {
			t.Errorf("unexpected path: %s", event.Path)
		}
	case <-ctx.Done():
		t.Error("timeout waiting for event")
	}
}

func TestFSNotifyWatcher_ReportsBacklog(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "old.pdf"), []byte("%PDF-"), 0644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644)
	os.Mkdir(filepath.Join(dir, "folder.pdf"), 0755)

	watcher, _ := NewFSNotifyWatcher(nil, nil)
	defer watcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	events, err := watcher.Watch(ctx, dir)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	select {
	case event := <-events:
		if filepath.Base(event.Path) != "old.pdf" || event.Operation != ports.FileCreated {
			t.Errorf("unexpected backlog event: %+v", event)
		}
	case <-ctx.Done():
		t.Fatal("backlog file was not reported")
	}

	select {
	case event := <-events:
		t.Errorf("only one backlog event expected, got %+v", event)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFSNotifyWatcher_CreatesMissingDirectory(t *testing.T) {
	inbox := filepath.Join(t.TempDir(), "inbox")

	watcher, _ := NewFSNotifyWatcher(nil, nil)
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := watcher.Watch(ctx, inbox); err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if info, err := os.Stat(inbox); err != nil || !info.IsDir() {
		t.Error("inbox directory should be created")
	}
}

func TestFSNotifyWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()

	watcher, _ := NewFSNotifyWatcher(nil, nil)
	defer watcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	events, _ := watcher.Watch(ctx, dir)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644)

	select {
	case <-events:
		t.Error("should not receive event for .txt")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFSNotifyWatcher_ClosesOnCancel(t *testing.T) {
	watcher, _ := NewFSNotifyWatcher(nil, nil)
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	events, _ := watcher.Watch(ctx, t.TempDir())
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("no events expected")
		}
	case <-time.After(time.Second):
		t.Error("channel should close after cancel")
	}
}
