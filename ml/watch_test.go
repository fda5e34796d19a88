package ml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatchArtifactsReportsChanges(t *testing.T) {
	modelPath, columnsPath := writeArtifacts(t, testColumns, testCoef(), 0)
	other := filepath.Join(filepath.Dir(modelPath), "notes.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 8)
	err := WatchArtifacts(ctx, []string{modelPath, columnsPath}, func(path string, op fsnotify.Op) {
		changed <- path
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(other, []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(modelPath, []byte(`{"coef":[1,2,3],"intercept":0}`), 0o600); err != nil {
		t.Fatal(err)
	}

	want, _ := filepath.Abs(modelPath)
	select {
	case got := <-changed:
		if got != want {
			t.Fatalf("expected change for %s, got %s", want, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestWatchArtifactsMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent", "model.json")
	err := WatchArtifacts(context.Background(), []string{missing}, func(string, fsnotify.Op) {})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
