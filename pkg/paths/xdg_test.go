package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPraiseHomeTakesPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PRAISE_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "/should/not/be/used")

	assert.Equal(t, filepath.Join(home, "config", "praise"), ConfigDir())
	assert.Equal(t, filepath.Join(home, "state", "praise"), StateDir())
	assert.Equal(t, filepath.Join(home, "state", "praise", "logs"), LogDir())
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("PRAISE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	assert.Equal(t, "/xdg/config/praise", ConfigDir())
	assert.Equal(t, "/xdg/state/praise", StateDir())
}

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PRAISE_HOME", home)

	require.NoError(t, EnsureDirs())
	assert.DirExists(t, ConfigDir())
	assert.DirExists(t, LogDir())
}
