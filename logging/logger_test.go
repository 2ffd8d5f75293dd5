package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Setenv("PRAISE_HOME", t.TempDir())

	logger := NewLogger("test-component")
	require.NotNil(t, logger)
	assert.Equal(t, "test-component", logger.Data["component"])

	// Same component returns the cached entry
	assert.Same(t, logger, NewLogger("test-component"))
}

func TestNewLoggerLevelFromEnv(t *testing.T) {
	t.Setenv("PRAISE_HOME", t.TempDir())
	t.Setenv("PRAISE_LOG_LEVEL", "debug")

	entry := newLogger("env-level", Config{Level: "error"})
	assert.Equal(t, logrus.DebugLevel, entry.Logger.GetLevel())
}

func TestNewLoggerLevelFromConfig(t *testing.T) {
	t.Setenv("PRAISE_HOME", t.TempDir())
	t.Setenv("PRAISE_LOG_LEVEL", "")

	entry := newLogger("cfg-level", Config{Level: "warn"})
	assert.Equal(t, logrus.WarnLevel, entry.Logger.GetLevel())

	entry = newLogger("bad-level", Config{Level: "chatty"})
	assert.Equal(t, logrus.InfoLevel, entry.Logger.GetLevel())
}

func TestFileSink(t *testing.T) {
	t.Setenv("PRAISE_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "out", "serve.log")

	entry := newLogger("serve", Config{
		File:   FileSinkConfig{Path: path},
		Format: FormatConfig{StructuredToStderr: "never"},
	})
	entry.Info("listening")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO]")
	assert.Contains(t, string(data), "listening")
}

func TestLogFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PRAISE_HOME", home)

	path := LogFilePath("serve", Config{})
	want := filepath.Join(home, "state", "praise", "logs", "serve-"+time.Now().Format("2006-01-02")+".log")
	assert.Equal(t, want, path)

	assert.Empty(t, LogFilePath("serve", Config{File: FileSinkConfig{Disabled: true}}))
	assert.Equal(t, "/var/log/p.log", LogFilePath("serve", Config{File: FileSinkConfig{Path: "/var/log/p.log"}}))
}

func TestShouldLogToStderr(t *testing.T) {
	assert.True(t, shouldLogToStderr(Config{Format: FormatConfig{StructuredToStderr: "always"}}, logrus.InfoLevel))
	assert.False(t, shouldLogToStderr(Config{Format: FormatConfig{StructuredToStderr: "never"}}, logrus.DebugLevel))
	assert.True(t, shouldLogToStderr(Config{}, logrus.DebugLevel), "auto mode logs when debugging")
}

func TestGlobalOutputRedirect(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalOutput(&buf)
	defer SetGlobalOutput(os.Stderr)

	t.Setenv("PRAISE_LOG_LEVEL", "")
	entry := newLogger("redirect", Config{
		File:   FileSinkConfig{Disabled: true},
		Format: FormatConfig{StructuredToStderr: "always"},
	})
	entry.Warn("to the buffer")

	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "to the buffer")
}

func TestSuspendStderrRestores(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalOutput(&buf)
	defer SetGlobalOutput(os.Stderr)

	restore := SuspendStderr()
	_, err := GetGlobalOutput().Write([]byte("hidden\n"))
	require.NoError(t, err)
	restore()
	_, err = GetGlobalOutput().Write([]byte("shown\n"))
	require.NoError(t, err)

	assert.Equal(t, "shown\n", buf.String())

	SetGlobalOutput(nil)
	_, err = GetGlobalOutput().Write([]byte("dropped\n"))
	assert.NoError(t, err)
	assert.Equal(t, "shown\n", buf.String())
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "praised",
				Data: logrus.Fields{
					"component": "presenter",
					"who":       "alice",
				},
			},
			want: []string{"[INFO]", "presenter", "praised", "who=alice"},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "no workers",
				Data: logrus.Fields{
					"component": "presenter",
				},
			},
			want:    []string{"[WARN]", "no workers"},
			notWant: []string{"presenter"},
		},
		{
			name:   "caller information",
			config: FormatConfig{},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				return &logrus.Entry{
					Logger:  logger,
					Level:   logrus.InfoLevel,
					Message: "with caller",
					Data:    logrus.Fields{"component": "server"},
					Caller: &runtime.Frame{
						File:     "/path/to/server.go",
						Line:     42,
						Function: "github.com/grovetools/praise/internal/server.(*Server).handleIndex",
					},
				}
			}(),
			want: []string{"[server.go:42 server.(*Server).handleIndex]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{Config: tt.config}
			tt.entry.Time = time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)

			out, err := formatter.Format(tt.entry)
			require.NoError(t, err)

			s := string(out)
			for _, w := range tt.want {
				assert.Contains(t, s, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, s, nw)
			}
			if !tt.config.DisableTimestamp {
				assert.True(t, strings.HasPrefix(s, "2026-01-02 03:04:05 "))
			}
		})
	}
}

func TestTextFormatterSortsFields(t *testing.T) {
	formatter := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}
	out, err := formatter.Format(&logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "m",
		Data:    logrus.Fields{"b": 2, "a": 1, "c": 3},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "m a=1 b=2 c=3")
}

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger().WithWriter(&buf)

	p.Success("done")
	p.Field("workers", 3)
	p.Path("assets", "/srv/workers")
	p.Praise("えらい。", "2026-01-02 03:04:05")
	p.ErrorPretty("failed", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"done", "workers", "/srv/workers", "えらい。", "2026-01-02 03:04:05", "boom"} {
		assert.Contains(t, out, want)
	}
}
