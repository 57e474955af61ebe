package nav

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/flavono123/schemabuilder/internal/schema"
	"github.com/flavono123/schemabuilder/internal/ui/theme"
)

type Line struct {
	field     *schema.Field
	level     int
	collapsed bool

	index int
}

func newLine(field *schema.Field, level int, collapsed bool, index int) *Line {
	return &Line{field: field, level: level, collapsed: collapsed, index: index}
}

func (l *Line) render(leftPadding int, cursored bool, maxWidth int, blurred bool) string {
	line := lipgloss.JoinHorizontal(
		lipgloss.Left,
		l.number(leftPadding),
		l.indent(),
		l.cursor(cursored, blurred),
		l.action(),
		" ",
		l.renderField(),
	)

	return lipgloss.NewStyle().MaxWidth(maxWidth).Render(line)
}

func (l *Line) renderField() string {
	key := lipgloss.NewStyle().Foreground(theme.Green())
	displayType := lipgloss.NewStyle().Foreground(theme.Peach())
	value := lipgloss.NewStyle().Foreground(theme.Text())
	if l.field.IsNested() {
		value = value.Foreground(theme.Subtext1())
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		key.Render(l.field.Key),
		displayType.Render(fmt.Sprintf("<%s>", l.field.Type())),
		" ",
		value.Render(l.field.ValueString()),
	)
}

func (l *Line) number(leftPadding int) string {
	number := lipgloss.NewStyle().Foreground(theme.Overlay0())
	fmtStr := fmt.Sprintf("%%%dd ", leftPadding)
	return number.Render(fmt.Sprintf(fmtStr, l.index+1))
}

func (l *Line) indent() string {
	return strings.Repeat(" ", l.level*2)
}

func (l *Line) cursor(cursored bool, blurred bool) string {
	if cursored {
		return l.cursorStyle(blurred).Render(">")
	}
	return l.cursorStyle(blurred).Render(" ")
}

func (l *Line) cursorStyle(blurred bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(theme.Blue()).Bold(true)
	if blurred {
		style = style.Foreground(theme.Overlay0()).Bold(false)
	}

	return style
}

func (l *Line) action() string {
	action := lipgloss.NewStyle().Foreground(theme.Subtext1())
	if l.field.IsNested() {
		if l.collapsed {
			return action.Render("+")
		}
		return action.Render("-")
	}
	return action.Render("•")
}
