package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultThemeName = "kanagawa"

// Colors is the palette a Theme is built from.
type Colors struct {
	Green     lipgloss.TerminalColor
	Yellow    lipgloss.TerminalColor
	Red       lipgloss.TerminalColor
	Orange    lipgloss.TerminalColor
	Cyan      lipgloss.TerminalColor
	Violet    lipgloss.TerminalColor
	Pink      lipgloss.TerminalColor
	LightText lipgloss.TerminalColor
	MutedText lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
	Selected  lipgloss.TerminalColor
}

// Theme holds the styles shared by the terminal UI and the log formatter.
type Theme struct {
	Colors Colors

	// Headers and titles
	Header lipgloss.Style
	Title  lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Text styles
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	// Containers
	Box lipgloss.Style

	// Special styles
	Highlight lipgloss.Style
	Accent    lipgloss.Style
	Praise    lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": newKanagawaColors,
	"gruvbox":  newGruvboxColors,
	"terminal": newTerminalColors,
}

// DefaultTheme is built from PRAISE_THEME (kanagawa, gruvbox, terminal).
var DefaultTheme = NewTheme()

// NewTheme creates a theme based on PRAISE_THEME.
func NewTheme() *Theme {
	return NewThemeWithName(os.Getenv("PRAISE_THEME"))
}

// NewThemeWithName constructs a theme from a palette name. Unknown names use
// the default palette.
func NewThemeWithName(name string) *Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	newColors, ok := themeRegistry[name]
	if !ok {
		newColors = themeRegistry[defaultThemeName]
	}
	return newThemeFromColors(newColors())
}

func newThemeFromColors(colors Colors) *Theme {
	return &Theme{
		Colors: colors,

		Header: lipgloss.NewStyle().
			Foreground(colors.Violet).
			Bold(true).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Foreground(colors.LightText).
			Bold(true),

		Success: lipgloss.NewStyle().Foreground(colors.Green),
		Error:   lipgloss.NewStyle().Foreground(colors.Red),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan),

		Bold:  lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Foreground(colors.MutedText),
		Selected: lipgloss.NewStyle().
			Background(colors.Selected).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),

		Highlight: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(colors.Violet).
			Bold(true),

		Praise: lipgloss.NewStyle().
			Foreground(colors.Pink).
			Bold(true),
	}
}

// RenderHeader renders a header with the default styling.
func RenderHeader(title string) string {
	return DefaultTheme.Header.Render(title)
}

// RenderStatus renders text with the appropriate status style.
func RenderStatus(status, text string) string {
	switch status {
	case "success":
		return DefaultTheme.Success.Render(text)
	case "error":
		return DefaultTheme.Error.Render(text)
	case "warning":
		return DefaultTheme.Warning.Render(text)
	case "info":
		return DefaultTheme.Info.Render(text)
	default:
		return text
	}
}

func newKanagawaColors() Colors {
	return Colors{
		Green:     lipgloss.Color("#98BB6C"),
		Yellow:    lipgloss.Color("#FF9E3B"),
		Red:       lipgloss.Color("#FF5D62"),
		Orange:    lipgloss.Color("#FFA066"),
		Cyan:      lipgloss.Color("#7E9CD8"),
		Violet:    lipgloss.Color("#957FB8"),
		Pink:      lipgloss.Color("#D27E99"),
		LightText: lipgloss.Color("#DCD7BA"),
		MutedText: lipgloss.Color("#727169"),
		Border:    lipgloss.Color("#363646"),
		Selected:  lipgloss.Color("#223249"),
	}
}

func newGruvboxColors() Colors {
	return Colors{
		Green:     lipgloss.Color("#B8BB26"),
		Yellow:    lipgloss.Color("#FABD2F"),
		Red:       lipgloss.Color("#FB4934"),
		Orange:    lipgloss.Color("#FE8019"),
		Cyan:      lipgloss.Color("#83A598"),
		Violet:    lipgloss.Color("#B16286"),
		Pink:      lipgloss.Color("#D3869B"),
		LightText: lipgloss.Color("#EBDBB2"),
		MutedText: lipgloss.Color("#BDAE93"),
		Border:    lipgloss.Color("#504945"),
		Selected:  lipgloss.Color("#32302F"),
	}
}

// newTerminalColors uses the 16 ANSI colors so the user's terminal scheme applies.
func newTerminalColors() Colors {
	return Colors{
		Green:     lipgloss.Color("2"),
		Yellow:    lipgloss.Color("3"),
		Red:       lipgloss.Color("1"),
		Orange:    lipgloss.Color("11"),
		Cyan:      lipgloss.Color("6"),
		Violet:    lipgloss.Color("5"),
		Pink:      lipgloss.Color("13"),
		LightText: lipgloss.Color("7"),
		MutedText: lipgloss.Color("8"),
		Border:    lipgloss.Color("8"),
		Selected:  lipgloss.Color("0"),
	}
}
