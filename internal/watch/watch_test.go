package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_DeliversChanges(t *testing.T) {
	root := t.TempDir()
	changes := make(chan []string, 4)

	w, err := New(root, 50*time.Millisecond, func(ctx context.Context, changed []string) {
		select {
		case changes <- changed:
		default:
		}
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	writeFile(t, filepath.Join(root, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, "01.js"), "{}")

	select {
	case changed := <-changes:
		want := filepath.Join(root, "01.js")
		if len(changed) != 1 || changed[0] != want {
			t.Errorf("changed = %v, want [%s]", changed, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	root := t.TempDir()
	changes := make(chan []string, 4)

	w, err := New(root, 20*time.Millisecond, func(ctx context.Context, changed []string) {
		select {
		case changes <- changed:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	sub := filepath.Join(root, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher time to pick up the new directory.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(sub, "02.json"), "{}")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case changed := <-changes:
			for _, p := range changed {
				if p == filepath.Join(sub, "02.json") {
					return
				}
			}
		case <-deadline:
			t.Fatal("change in new subdirectory not delivered")
		}
	}
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, time.Millisecond, func(context.Context, []string) {})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := New(t.TempDir(), time.Millisecond, func(context.Context, []string) {})
	if err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()

	if err := w.Start(context.Background()); err == nil {
		t.Error("Start() after Stop() should fail")
	}
}

func TestNew_NilCallback(t *testing.T) {
	if _, err := New(t.TempDir(), time.Millisecond, nil); err == nil {
		t.Error("New() should reject a nil callback")
	}
}
