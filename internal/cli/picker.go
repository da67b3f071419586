package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/vmoranv/aolachart/pkg/attr"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// AttrListModel is the bubbletea model for interactive attribute selection,
// shown when a name query matches several catalogue entries.
type AttrListModel struct {
	Attrs    []attr.Attribute
	Cursor   int
	Selected *attr.Attribute
}

// NewAttrListModel creates a new attribute list model.
func NewAttrListModel(attrs []attr.Attribute) AttrListModel {
	return AttrListModel{Attrs: attrs}
}

func (m AttrListModel) Init() tea.Cmd {
	return nil
}

func (m AttrListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Attrs)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Attrs[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m AttrListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Attribute"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, a := range m.Attrs {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		var marker string
		if attr.IsSuper(a.ID) {
			marker = StyleWarning.Render("!")
		} else {
			marker = listDimStyle.Render("·")
		}

		line := fmt.Sprintf("%s%s %-20s  %s", cursor, marker, a.Name, listDimStyle.Render(fmt.Sprintf("id %d", a.ID)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s super family   · origin family\n", StyleWarning.Render("!")))

	return b.String()
}

// pickAttribute runs the interactive picker and reports whether a selection
// was made. Quitting without selecting is not an error.
func pickAttribute(attrs []attr.Attribute) (attr.Attribute, bool, error) {
	p := tea.NewProgram(NewAttrListModel(attrs))
	finalModel, err := p.Run()
	if err != nil {
		return attr.Attribute{}, false, err
	}

	fm, ok := finalModel.(AttrListModel)
	if !ok || fm.Selected == nil {
		return attr.Attribute{}, false, nil
	}
	return *fm.Selected, true, nil
}

// isInteractive reports whether the process is attached to a terminal on both
// stdin and stdout, the precondition for running the picker.
func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
