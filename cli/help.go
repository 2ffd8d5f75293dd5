package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/grovetools/praise/tui/theme"
)

const (
	maxWidth = 60
	minWidth = 40
)

// helpWidth is the terminal width clamped to [minWidth, maxWidth], minus the
// one-space indent.
func helpWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth || width > maxWidth {
		width = maxWidth
	}
	return width - 2
}

// wrapText wraps each paragraph of text at width columns.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			out = append(out, paragraph)
			continue
		}
		var b strings.Builder
		for _, word := range strings.Fields(paragraph) {
			if b.Len() > 0 && b.Len()+1+len(word) > width {
				out = append(out, b.String())
				b.Reset()
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(word)
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return strings.Join(out, "\n")
}

// SetStyledHelp applies the themed help layout to a command.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
}

// ApplyStyledHelpRecursive applies styled help to cmd and every subcommand and
// silences cobra's usage dump. Call it once the tree is complete.
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
	cmd.SetUsageFunc(func(*cobra.Command) error { return nil })
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

// PrintError reports a usage error (bad flag, wrong arguments) with a hint
// pointing at --help.
func PrintError(cmd *cobra.Command, err error) {
	t := theme.DefaultTheme
	label := lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Red).Render("Error:")
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", label, err)
	fmt.Fprintln(cmd.ErrOrStderr(), t.Muted.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}

// helpPrinter renders one command's help page.
type helpPrinter struct {
	w     io.Writer
	t     *theme.Theme
	width int

	section lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	sub     lipgloss.Style
}

func newHelpPrinter(w io.Writer) *helpPrinter {
	t := theme.DefaultTheme
	return &helpPrinter{
		w:       w,
		t:       t,
		width:   helpWidth(),
		section: lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Orange),
		name:    lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Cyan),
		flag:    lipgloss.NewStyle().Foreground(t.Colors.Violet),
		sub:     lipgloss.NewStyle().Foreground(t.Colors.Green),
	}
}

func (h *helpPrinter) line(s string) { fmt.Fprintln(h.w, " "+s) }

func (h *helpPrinter) heading(s string) {
	fmt.Fprintln(h.w)
	h.line(h.section.Render(s))
}

func (h *helpPrinter) paragraph(text string, style *lipgloss.Style) {
	for _, l := range strings.Split(wrapText(text, h.width), "\n") {
		if style != nil {
			l = style.Render(l)
		}
		h.line(l)
	}
}

func styledHelpFunc(cmd *cobra.Command, _ []string) {
	h := newHelpPrinter(cmd.OutOrStdout())

	title := lipgloss.NewStyle().Bold(true).Foreground(h.t.Colors.Orange)
	h.line(title.Render(strings.ToUpper(cmd.CommandPath())))

	description, examples := splitExamples(cmd.Long)
	if cmd.Short != "" {
		italic := lipgloss.NewStyle().Italic(true)
		h.paragraph(cmd.Short, &italic)
	}
	if description != "" && description != cmd.Short {
		fmt.Fprintln(h.w)
		h.paragraph(description, nil)
	}

	if cmd.Runnable() || cmd.HasSubCommands() {
		h.heading("USAGE")
		if cmd.Runnable() {
			h.line(cmd.UseLine())
		}
		if cmd.HasSubCommands() {
			h.line(cmd.CommandPath() + " [command]")
		}
	}

	h.commands(cmd)
	h.flags(cmd)

	if cmd.Example != "" {
		examples = cmd.Example
	}
	if examples != "" {
		h.heading("EXAMPLES")
		h.examples(examples, strings.Fields(cmd.CommandPath())[0])
	}

	if cmd.HasSubCommands() {
		fmt.Fprintf(h.w, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

func (h *helpPrinter) commands(cmd *cobra.Command) {
	var subs []*cobra.Command
	pad := 0
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			subs = append(subs, sub)
			pad = max(pad, len(sub.Name()))
		}
	}
	if len(subs) == 0 {
		return
	}
	h.heading("COMMANDS")
	for _, sub := range subs {
		h.line(fmt.Sprintf("%s%s  %s", h.name.Render(sub.Name()), strings.Repeat(" ", pad-len(sub.Name())), sub.Short))
	}
}

// flags lists local flags in detail for leaf commands and inline for parents.
func (h *helpPrinter) flags(cmd *cobra.Command) {
	var visible []*pflag.Flag
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			visible = append(visible, f)
		}
	})
	if len(visible) == 0 {
		return
	}

	if cmd.HasAvailableSubCommands() {
		names := make([]string, 0, len(visible))
		for _, f := range visible {
			names = append(names, strings.TrimSpace(strings.Replace(flagName(f), ", ", "/", 1)))
		}
		fmt.Fprintln(h.w)
		h.line(h.t.Muted.Render("Flags: " + strings.Join(names, ", ")))
		return
	}

	h.heading("FLAGS")
	pad := 0
	for _, f := range visible {
		pad = max(pad, len(flagName(f)))
	}
	for _, f := range visible {
		name := flagName(f)
		usage, choices := parseChoices(f.Usage)
		switch f.DefValue {
		case "", "false", "[]", "0":
		default:
			usage += h.t.Muted.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
		}
		h.line(fmt.Sprintf("%s%s  %s", h.flag.Render(name), strings.Repeat(" ", pad-len(name)), usage))
		for _, choice := range choices {
			h.line(strings.Repeat(" ", pad+2) + h.t.Muted.Render("• "+choice))
		}
	}
}

// examples renders example lines: comments muted, the program name, the
// subcommand and flags each in their own color.
func (h *helpPrinter) examples(text, program string) {
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		switch {
		case l == "":
			fmt.Fprintln(h.w)
		case strings.HasPrefix(l, "#"):
			h.line(h.t.Muted.Render(l))
		default:
			parts := strings.Fields(l)
			for i, p := range parts {
				switch {
				case i == 0 && p == program:
					parts[i] = h.name.Render(p)
				case strings.HasPrefix(p, "-"):
					parts[i] = h.flag.Render(p)
				case i == 1:
					parts[i] = h.sub.Render(p)
				}
			}
			h.line("  " + strings.Join(parts, " "))
		}
	}
}

// splitExamples separates an "Examples:" block from a long description.
func splitExamples(long string) (description, examples string) {
	for _, marker := range []string{"\nExamples:\n", "\nExample:\n"} {
		if i := strings.Index(long, marker); i >= 0 {
			return strings.TrimSpace(long[:i]), strings.TrimSpace(long[i+len(marker):])
		}
	}
	return strings.TrimSpace(long), ""
}

func flagName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return "-" + f.Shorthand + ", --" + f.Name
	}
	return "    --" + f.Name
}

// parseChoices splits "label: a, b, or c (note)" into "label: (note)" and
// the choices. Usages listing fewer than three choices are left alone.
func parseChoices(usage string) (string, []string) {
	label, rest, ok := strings.Cut(usage, ": ")
	if !ok {
		return usage, nil
	}
	list, note, _ := strings.Cut(rest, " (")
	parts := strings.Split(list, ", ")
	if len(parts) < 3 {
		return usage, nil
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(strings.TrimPrefix(p, "or "))
	}
	desc := label + ":"
	if note != "" {
		desc += " (" + note
	}
	return desc, parts
}
