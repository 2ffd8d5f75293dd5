package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	paths []string
	ch    chan string
}

func newRecorder() *recorder { return &recorder{ch: make(chan string, 16)} }

func (r *recorder) record(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	r.ch <- path
}

func (r *recorder) wait(t *testing.T) string {
	t.Helper()
	select {
	case p := <-r.ch:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
		return ""
	}
}

func startWatcher(t *testing.T, dir string, rec *recorder) {
	t.Helper()
	w, err := New(dir, nil, 20*time.Millisecond, rec.record)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestNewImageTriggersChange(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, dir, rec)

	target := filepath.Join(dir, "carol.png")
	require.NoError(t, os.WriteFile(target, []byte("png"), 0o644))
	assert.Equal(t, target, rec.wait(t))
}

func TestRemovedImageTriggersChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "alice.jpg")
	require.NoError(t, os.WriteFile(target, []byte("jpg"), 0o644))

	rec := newRecorder()
	startWatcher(t, dir, rec)

	require.NoError(t, os.Remove(target))
	assert.Equal(t, target, rec.wait(t))
}

func TestNonImagesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, dir, rec)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dave.webp"), []byte("x"), 0o644))

	assert.Equal(t, filepath.Join(dir, "dave.webp"), rec.wait(t))
}

func TestBurstIsDebounced(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	startWatcher(t, dir, rec)

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	rec.wait(t)

	select {
	case p := <-rec.ch:
		// A slow filesystem may split the burst; anything beyond two is not debounced.
		select {
		case q := <-rec.ch:
			t.Fatalf("expected at most two changes, got %s and %s", p, q)
		case <-time.After(200 * time.Millisecond):
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestMissingFolderIsWatchedUntilCreated(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "workers")
	rec := newRecorder()
	startWatcher(t, dir, rec)

	require.NoError(t, os.Mkdir(dir, 0o755))
	assert.Equal(t, dir, rec.wait(t))

	target := filepath.Join(dir, "erin.png")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	assert.Equal(t, target, rec.wait(t))
}

func TestNewFailsWithoutParent(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "a", "b"), nil, 0, nil)
	assert.Error(t, err)
}
