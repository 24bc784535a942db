package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/odvcencio/coremerge/pkg/mergemodel"
)

// colorizer picks the palette a conflict/merge report is rendered with:
// styled when writing to an interactive terminal and --no-color was not
// given, plain otherwise.
type colorizer struct {
	conflict lipgloss.Style
	changed  lipgloss.Style
	removed  lipgloss.Style
	plain    bool
}

func newColorizer(w io.Writer, noColor bool) colorizer {
	f, ok := w.(*os.File)
	enabled := !noColor && ok && term.IsTerminal(int(f.Fd()))
	if !enabled {
		return colorizer{plain: true}
	}
	return colorizer{
		conflict: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		changed:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		removed:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true),
	}
}

func (c colorizer) marker(ml *mergemodel.MergeLine) string {
	switch {
	case ml.Conflict:
		return c.style(c.conflict, "CONFLICT")
	case ml.Delta:
		return c.style(c.changed, fmt.Sprintf("%v", ml.SrcSelect))
	default:
		return ""
	}
}

func (c colorizer) style(s lipgloss.Style, text string) string {
	if c.plain {
		return text
	}
	return s.Render(text)
}
