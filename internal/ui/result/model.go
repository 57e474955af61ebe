package result

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flavono123/schemabuilder/internal/preview"
	"github.com/flavono123/schemabuilder/internal/ui/event"
	"github.com/flavono123/schemabuilder/internal/ui/theme"
)

const (
	RESULT_SCROLL_STEP = 1

	RESULT_WIDTH_RATIO          = 0.5
	RESULT_HEIGHT_BOTTOM_MARGIN = 7 // topbar 1 + border top, down 2 + footer 1 + help, status 2 + gap 1
)

type Model struct {
	focus bool

	input      preview.Input
	opts       preview.Options
	exportPath string

	text    string
	changed map[int]bool // line indexes of text that changed by the last edit
	stats   preview.Stats
	err     error

	vp    viewport.Model
	style lipgloss.Style

	keys keyMap
	help help.Model
}

// NewModel renders the initial preview. An empty exportPath exports to
// schema.<ext> of the current format.
func NewModel(in preview.Input, opts preview.Options, exportPath string) *Model {
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Overlay0())

	m := &Model{
		input:      in,
		opts:       opts,
		exportPath: exportPath,
		changed:    map[int]bool{},
		vp:         viewport.New(0, 0),
		style:      style,
		keys:       newKeyMap(),
		help:       help.New(),
	}
	m.refresh(false)

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		m.input = msg.Input
		return m, m.refresh(true)
	case tea.WindowSizeMsg:
		m.vp.Width = int(float64(msg.Width) * RESULT_WIDTH_RATIO)
		m.vp.Height = max(msg.Height-RESULT_HEIGHT_BOTTOM_MARGIN, 1)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.up):
			m.vp.ScrollUp(RESULT_SCROLL_STEP)
		case key.Matches(msg, m.keys.down):
			m.vp.ScrollDown(RESULT_SCROLL_STEP)
		case key.Matches(msg, m.keys.format):
			m.opts.Format = m.opts.Format.Next()
			m.vp.GotoTop()
			return m, m.refresh(false)
		case key.Matches(msg, m.keys.export):
			return m, m.export()
		}
	}

	return m, nil
}

func (m *Model) View() string {
	m.vp.SetContent(m.render())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTopBar(),
		m.style.Render(m.vp.View()),
		m.renderFooter(),
	)
}

// Help renders the short help of the preview keys.
func (m *Model) Help() string {
	return m.help.View(m.keys)
}

// Text is the current rendered preview.
func (m *Model) Text() string {
	return m.text
}

func (m *Model) Format() preview.Format {
	return m.opts.Format
}

// Changed reports whether line i was changed by the last edit.
func (m *Model) Changed(i int) bool {
	return m.changed[i]
}

func (m *Model) ExportPath() string {
	if m.exportPath != "" {
		return m.exportPath
	}
	return preview.DefaultExportPath(m.opts.Format)
}

func (m *Model) Focus() tea.Cmd {
	m.focus = true
	m.style = m.style.Border(lipgloss.ThickBorder()).BorderForeground(theme.Blue())
	return nil
}

func (m *Model) Blur() {
	m.focus = false
	m.style = m.style.Border(lipgloss.NormalBorder()).BorderForeground(theme.Overlay0())
}

// refresh re-renders the preview. With highlight the lines that differ
// from the previous rendering are marked; a format switch never highlights.
func (m *Model) refresh(highlight bool) tea.Cmd {
	text, err := preview.Render(m.input, m.opts)
	if err != nil {
		m.err = err
		return statusCmd(err.Error(), event.Error)
	}
	stats, err := preview.ComputeStats(m.input.Fields)
	if err != nil {
		m.err = err
		return statusCmd(err.Error(), event.Error)
	}

	if highlight {
		m.changed = preview.ChangedLines(m.text, text)
	} else {
		m.changed = map[int]bool{}
	}
	m.text = text
	m.stats = stats
	m.err = nil
	return nil
}

func (m *Model) export() tea.Cmd {
	path, text := m.ExportPath(), m.text
	return func() tea.Msg {
		if err := preview.Export(path, text); err != nil {
			return event.SetStatusMsg{Message: err.Error(), Status: event.Error}
		}
		return event.SetStatusMsg{Message: "exported to " + path, Status: event.Info}
	}
}

func (m *Model) render() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(theme.Red()).Render(m.err.Error())
	}

	plain := lipgloss.NewStyle().Foreground(theme.Text())
	highlight := lipgloss.NewStyle().Foreground(theme.Yellow()).Background(theme.Surface0())

	lines := strings.Split(m.text, "\n")
	for i, line := range lines {
		if m.changed[i] {
			lines[i] = highlight.Render(line)
		} else {
			lines[i] = plain.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTopBar() string {
	title := lipgloss.NewStyle().Margin(0, 1).Render("Preview")
	format := lipgloss.NewStyle().
		Foreground(theme.Mantle()).
		Background(theme.Mauve()).
		Padding(0, 1).
		Render(string(m.opts.Format))
	return lipgloss.JoinHorizontal(lipgloss.Left, title, format)
}

func (m *Model) renderFooter() string {
	return lipgloss.NewStyle().
		Foreground(theme.Subtext1()).
		Margin(0, 1).
		Render(m.stats.String())
}

func statusCmd(message string, status event.Status) tea.Cmd {
	return func() tea.Msg {
		return event.SetStatusMsg{Message: message, Status: status}
	}
}
