package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/praise/config"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDefaultVim(t *testing.T) {
	km := DefaultVim()

	assert.Equal(t, []string{"k", "up"}, km.Up.Keys())
	assert.Equal(t, []string{"j", "down"}, km.Down.Keys())
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Praise))
	assert.True(t, key.Matches(runeKey('r'), km.Another))
	assert.True(t, key.Matches(runeKey('?'), km.Help))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
}

func TestDefaultArrows(t *testing.T) {
	km := DefaultArrows()

	assert.Equal(t, []string{"up"}, km.Up.Keys())
	assert.False(t, key.Matches(runeKey('j'), km.Down))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyDown}, km.Down))
	assert.Equal(t, DefaultVim().Another.Keys(), km.Another.Keys())
}

func TestFromConfigAppliesOverrides(t *testing.T) {
	km := FromConfig(Config{
		Preset: "arrows",
		Keybindings: Bindings{
			"another": {"n", "tab"},
			"quit":    {"x"},
			"unknown": {"z"},
		},
	})

	assert.Equal(t, []string{"up"}, km.Up.Keys())
	assert.Equal(t, []string{"n", "tab"}, km.Another.Keys())
	assert.Equal(t, "n", km.Another.Help().Key)
	assert.Equal(t, "another", km.Another.Help().Desc)
	assert.Equal(t, []string{"x"}, km.Quit.Keys())
}

func TestLoadReadsTUISection(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte(`
tui:
  preset: arrows
  keybindings:
    praise: ["p"]
`), "yaml")
	require.NoError(t, err)

	km := Load(cfg)
	assert.Equal(t, []string{"up"}, km.Up.Keys())
	assert.Equal(t, []string{"p"}, km.Praise.Keys())

	assert.Equal(t, DefaultVim().Up.Keys(), Load(nil).Up.Keys())
}

func TestApplyOverridesIgnoresEmptyKeys(t *testing.T) {
	km := DefaultVim()
	km.ApplyOverrides(Bindings{"quit": nil, "help": {}})
	assert.Equal(t, []string{"q", "ctrl+c"}, km.Quit.Keys())
	assert.Equal(t, []string{"?"}, km.Help.Keys())
}

func TestSections(t *testing.T) {
	km := DefaultVim()
	sections := km.Sections()
	require.Len(t, sections, 3)
	assert.Equal(t, "Navigation", sections[0].Name)
	assert.Equal(t, "System", sections[2].Name)

	km.Another.SetEnabled(false)
	assert.Len(t, km.Sections()[1].Enabled(), 1)
	assert.Empty(t, Section{Name: "Empty"}.Enabled())

	assert.Len(t, km.FullHelp(), 3)
	assert.Len(t, km.ShortHelp(), 4)
}
