package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/praise/config"
)

// Config is the `tui` section of praise.yml.
type Config struct {
	// Preset is "vim" (default) or "arrows".
	Preset string `yaml:"preset"`
	// Keybindings maps snake_case binding names (e.g. "another") to keys.
	Keybindings Bindings `yaml:"keybindings"`
}

// Bindings maps a binding name to the keys that trigger it.
type Bindings map[string][]string

// KeyMap holds the praise TUI keybindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Praise  key.Binding
	Another key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultVim returns the default vim-style keymap.
func DefaultVim() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first worker"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last worker"),
		),
		Praise: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "praise"),
		),
		Another: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "another"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DefaultArrows returns a keymap using arrow keys only for navigation.
func DefaultArrows() KeyMap {
	k := DefaultVim()
	k.Up = key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("up", "up"),
	)
	k.Down = key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("down", "down"),
	)
	k.Top = key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("Home", "first worker"),
	)
	k.Bottom = key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("End", "last worker"),
	)
	return k
}

// Load builds the keymap from the `tui` section of cfg: the preset first,
// then per-binding overrides.
func Load(cfg *config.Config) KeyMap {
	var tuiCfg Config
	if cfg != nil {
		// A malformed section falls back to the defaults.
		_ = cfg.UnmarshalExtension("tui", &tuiCfg)
	}
	return FromConfig(tuiCfg)
}

// FromConfig builds the keymap from an already decoded `tui` section.
func FromConfig(c Config) KeyMap {
	var km KeyMap
	switch c.Preset {
	case "arrows":
		km = DefaultArrows()
	default:
		km = DefaultVim()
	}
	km.ApplyOverrides(c.Keybindings)
	return km
}

// byName addresses each binding by its config name.
func (k *KeyMap) byName() map[string]*key.Binding {
	return map[string]*key.Binding{
		"up":      &k.Up,
		"down":    &k.Down,
		"top":     &k.Top,
		"bottom":  &k.Bottom,
		"praise":  &k.Praise,
		"another": &k.Another,
		"help":    &k.Help,
		"quit":    &k.Quit,
	}
}

// ApplyOverrides rebinds the named bindings, keeping their help text.
// Unknown names and empty key lists are ignored.
func (k *KeyMap) ApplyOverrides(overrides Bindings) {
	named := k.byName()
	for name, keys := range overrides {
		b, ok := named[name]
		if !ok || len(keys) == 0 {
			continue
		}
		*b = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], b.Help().Desc),
		)
	}
}

// ShortHelp returns the bindings for the one-line help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Praise, k.Another, k.Help, k.Quit}
}

// Section is a named column of the full help view.
type Section struct {
	Name     string
	Bindings []key.Binding
}

// Enabled returns the section's enabled bindings.
func (s Section) Enabled() []key.Binding {
	var out []key.Binding
	for _, b := range s.Bindings {
		if b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}

// Sections groups the bindings for the full help view.
func (k KeyMap) Sections() []Section {
	return []Section{
		{Name: "Navigation", Bindings: []key.Binding{k.Up, k.Down, k.Top, k.Bottom}},
		{Name: "Actions", Bindings: []key.Binding{k.Praise, k.Another}},
		{Name: "System", Bindings: []key.Binding{k.Help, k.Quit}},
	}
}

// FullHelp returns one help column per section.
func (k KeyMap) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for _, s := range k.Sections() {
		cols = append(cols, s.Enabled())
	}
	return cols
}
