package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/praise/config"
	"github.com/grovetools/praise/errors"
	"github.com/grovetools/praise/pkg/praise"
	"github.com/grovetools/praise/pkg/presenter"
	"github.com/grovetools/praise/pkg/workers"
)

// isolate points every praise directory at a temp dir and returns a config
// file whose assets live in assetsDir.
func isolate(t *testing.T, assetsDir string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("PRAISE_HOME", home)
	t.Setenv("PRAISE_LOG_LEVEL", "error")

	cfgPath := filepath.Join(home, "praise.yml")
	body := "assets:\n  dir: " + assetsDir + "\n  watch: false\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	return cfgPath
}

func writePNG(t *testing.T, dir, name string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestWorkersCommandJSON(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "bob.png")
	writePNG(t, dir, "alice.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	cfgPath := isolate(t, dir)

	out, err := run(t, "workers", "-c", cfgPath, "--json")
	require.NoError(t, err)

	var list []workers.Worker
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "alice.png", list[0].Name)
	assert.Equal(t, "bob.png", list[1].Name)
}

func TestWorkersCommandEmptyFolder(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "praise.yml")
	isolate(t, dir)
	require.NoError(t, os.WriteFile(cfgPath,
		[]byte("assets:\n  dir: "+dir+"\n  placeholders: false\n"), 0o644))

	out, err := run(t, "workers", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, presenter.NoticeNoWorkers)
}

func TestWorkersCommandRejectsUnknownVariant(t *testing.T) {
	cfgPath := isolate(t, t.TempDir())

	_, err := run(t, "workers", "-c", cfgPath, "--variant", "carousel")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}

func TestOnceCommandJSON(t *testing.T) {
	cfgPath := isolate(t, t.TempDir())

	out, err := run(t, "once", "たなか", "-c", cfgPath, "--json", "--no-hints")
	require.NoError(t, err)

	var entry presenter.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "たなか", entry.Who)
	assert.Contains(t, praise.Phrases(), entry.Message)
	_, err = time.Parse(presenter.TimeLayout, entry.Time)
	assert.NoError(t, err)
}

func TestOncePrettyOutput(t *testing.T) {
	cfgPath := isolate(t, t.TempDir())

	out, err := run(t, "once", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "🕒")
}

func TestConfigCommandFormats(t *testing.T) {
	cfgPath := isolate(t, "/srv/workers")

	out, err := run(t, "config", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "dir: /srv/workers")
	assert.Contains(t, out, "variant: grid")

	out, err = run(t, "config", "-c", cfgPath, "--toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[assets]")
	assert.Contains(t, out, "/srv/workers")

	out, err = run(t, "config", "--schema")
	require.NoError(t, err)
	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Contains(t, schema, "properties")
}

func TestLatestLogFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"praise-server-2026-10-17.log",
		"praise-server-2026-10-19.log",
		"praise-cli-2026-10-20.log",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	got, err := latestLogFile(dir, "praise-server")
	require.NoError(t, err)
	assert.Equal(t, "praise-server-2026-10-19.log", filepath.Base(got))

	_, err = latestLogFile(dir, "praise-tui")
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestLogsCommandTail(t *testing.T) {
	isolate(t, t.TempDir())
	dir := t.TempDir()
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, strings.Repeat("x", i+1))
	}
	path := filepath.Join(dir, "praise-server-2026-10-19.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	out, err := run(t, "logs", "--dir", dir, "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(lines[7:], "\n")+"\n", out)
}

func TestRunServerStopsOnCancel(t *testing.T) {
	isolate(t, t.TempDir())
	dir := t.TempDir()
	writePNG(t, dir, "alice.png")

	cfg := config.Default()
	cfg.Assets.Dir = dir
	cfg.Server.ShutdownTimeout = config.Duration(2 * time.Second)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, cfg, ln, logger.WithField("component", "test")) }()

	url := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(url + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
