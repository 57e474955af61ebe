package ui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/flavono123/schemabuilder/internal/preview"
	"github.com/flavono123/schemabuilder/internal/session"
	"github.com/flavono123/schemabuilder/internal/ui/event"
	"github.com/flavono123/schemabuilder/internal/ui/kbar"
	"github.com/flavono123/schemabuilder/internal/ui/nav"
	"github.com/flavono123/schemabuilder/internal/ui/result"
	"github.com/flavono123/schemabuilder/internal/ui/theme"
)

const (
	//longing for https://github.com/charmbracelet/bubbles/pull/240
	UPPER_20 = 0.8
)

type sessionState uint

const (
	navView sessionState = iota
	resultView
)

type Options struct {
	Session    *session.Session
	Preview    preview.Options
	ExportPath string
	Logger     *log.Logger
}

type Model struct {
	state sessionState
	keys  keyMap
	help  help.Model

	session *session.Session
	nav     *nav.Model
	result  *result.Model
	kbar    *kbar.Model

	status     string
	statusKind event.Status
	statusSeq  int

	width  int
	height int

	logger *log.Logger
}

func NewModel(opts Options) *Model {
	s := opts.Session
	if s == nil {
		s = session.New(session.Options{Logger: opts.Logger})
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Model{
		state:   navView,
		keys:    newKeyMap(),
		help:    help.New(),
		session: s,
		nav:     nav.NewModel(s.Fields()),
		result:  result.NewModel(previewInput(s), opts.Preview, opts.ExportPath),
		kbar:    kbar.NewModel(s.Fields()),
		logger:  logger,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.nav.Init(), m.result.Init(), m.kbar.Init())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.updateKeys(msg)

	case event.AddFieldMsg:
		field, err := m.session.Add(msg.ParentID)
		if err != nil {
			return m, m.fail(err)
		}
		return m, m.sync(field.ID)
	case event.DeleteFieldMsg:
		if err := m.session.Delete(msg.ID); err != nil {
			return m, m.fail(err)
		}
		return m, m.sync("")
	case event.RenameFieldMsg:
		if err := m.session.Rename(msg.ID, msg.Key); err != nil {
			return m, m.fail(err)
		}
		return m, m.sync(msg.ID)
	case event.ChangeTypeMsg:
		if err := m.session.ChangeType(msg.ID, msg.Type); err != nil {
			return m, m.fail(err)
		}
		return m, m.sync(msg.ID)
	case event.SetValueMsg:
		if err := m.session.SetValue(msg.ID, msg.Raw); err != nil {
			return m, m.fail(err)
		}
		return m, m.sync(msg.ID)
	case event.JumpToFieldMsg:
		m.focusNav()
		_, cmd := m.nav.Update(msg)
		return m, cmd

	case event.SetStatusMsg:
		m.status = msg.Message
		m.statusKind = msg.Status
		m.statusSeq++
		return m, event.ShowStatus(m.statusSeq)
	case event.HideStatusMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, m.broadcast(msg)
}

func (m *Model) updateKeys(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.quit) {
		return tea.Quit
	}

	// modal children own every key while open
	if m.kbar.Visible() {
		_, cmd := m.kbar.Update(msg)
		return cmd
	}
	if m.nav.Editing() {
		_, cmd := m.nav.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.tabView):
		if m.state == navView {
			m.focusResult()
		} else {
			m.focusNav()
		}
		return nil
	case key.Matches(msg, m.keys.showKbar):
		return kbar.Show
	}

	var cmd tea.Cmd
	if m.state == navView {
		_, cmd = m.nav.Update(msg)
	} else {
		_, cmd = m.result.Update(msg)
	}
	return cmd
}

func (m *Model) View() string {
	if m.kbar.Visible() {
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			UPPER_20,
			m.kbar.View(),
			lipgloss.WithWhitespaceBackground(theme.Mantle()),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.nav.View(), m.result.View()),
		m.renderHelp(),
		m.renderStatus(),
	)
}

// sync pushes the session's forest to every pane after a mutation, moving
// the tree cursor to focusID when set.
func (m *Model) sync(focusID string) tea.Cmd {
	fields := m.session.Fields()
	m.kbar.SetFields(fields)

	_, navCmd := m.nav.Update(nav.SetFieldsMsg{Fields: fields, FocusID: focusID})
	_, resultCmd := m.result.Update(result.RefreshMsg{Input: previewInput(m.session)})
	return tea.Batch(navCmd, resultCmd)
}

func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	_, navCmd := m.nav.Update(msg)
	_, resultCmd := m.result.Update(msg)
	_, kbarCmd := m.kbar.Update(msg)
	return tea.Batch(navCmd, resultCmd, kbarCmd)
}

func (m *Model) fail(err error) tea.Cmd {
	m.logger.Warn("edit rejected", "err", err)
	return func() tea.Msg {
		return event.SetStatusMsg{Message: err.Error(), Status: event.Error}
	}
}

func (m *Model) focusNav() {
	m.state = navView
	m.nav.Focus()
	m.result.Blur()
}

func (m *Model) focusResult() {
	m.state = resultView
	m.nav.Blur()
	m.result.Focus()
}

func (m *Model) renderHelp() string {
	pane := m.nav.Help()
	if m.state == resultView {
		pane = m.result.Help()
	}
	sep := lipgloss.NewStyle().Foreground(theme.Overlay0()).Render(" │ ")
	return lipgloss.NewStyle().Margin(0, 1).Render(pane + sep + m.help.View(m.keys))
}

func (m *Model) renderStatus() string {
	color := theme.Green()
	switch m.statusKind {
	case event.Error:
		color = theme.Red()
	case event.Warn:
		color = theme.Yellow()
	}
	return lipgloss.NewStyle().Foreground(color).Margin(0, 1).Render(m.status)
}

func previewInput(s *session.Session) preview.Input {
	return preview.Input{Fields: s.Fields(), Previous: s.Previous()}
}
