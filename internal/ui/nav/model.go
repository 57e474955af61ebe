package nav

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flavono123/schemabuilder/internal/schema"
	"github.com/flavono123/schemabuilder/internal/ui/event"
	"github.com/flavono123/schemabuilder/internal/ui/theme"
)

const (
	NAV_CURSOR_TOP  = 0
	NAV_SCROLL_STEP = 1

	NAV_WIDTH_RATIO          = 0.5
	NAV_HEIGHT_BOTTOM_MARGIN = 6 // topbar 1 + border top, down 2 + input 1 + help, status 2
	NAV_JUMP_MARGIN          = 3 // render above 3 lines when the cursor jumps out of the viewport

	NAV_EMPTY_PLACEHOLDER = "No fields yet. Press a to add the first field."
)

type editMode uint

const (
	editNone editMode = iota
	editKey
	editValue
)

type Model struct {
	focus     bool
	fields    schema.Forest
	collapsed map[string]bool // by field id

	vp viewport.Model

	style  lipgloss.Style
	cursor int
	lines  []*Line

	mode   editMode
	editID string
	input  textinput.Model

	keys keyMap
	help help.Model
}

func NewModel(fields schema.Forest) *Model {
	style := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.Blue())

	ti := textinput.New()
	ti.CharLimit = 0 // keys and values are unbounded

	m := &Model{
		focus:     true, // HACK: required to be injected by root
		fields:    fields,
		collapsed: map[string]bool{},
		vp:        viewport.New(0, 0),
		style:     style,
		cursor:    0,
		input:     ti,
		keys:      newKeyMap(),
		help:      help.New(),
	}
	m.rebuild()

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SetFieldsMsg:
		m.fields = msg.Fields
		if msg.FocusID != "" {
			m.reveal(msg.FocusID)
		}
		m.rebuild()
		if msg.FocusID != "" {
			m.setCursor(msg.FocusID)
		}
	case event.JumpToFieldMsg:
		m.reveal(msg.ID)
		m.rebuild()
		m.setCursor(msg.ID)
	case tea.WindowSizeMsg:
		m.vp.Width = int(float64(msg.Width) * NAV_WIDTH_RATIO)
		m.vp.Height = max(msg.Height-NAV_HEIGHT_BOTTOM_MARGIN, 1)
		m.input.Width = max(m.vp.Width-len(m.input.Prompt)-1, 1)
		m.rebuild()
	case tea.KeyMsg:
		if m.Editing() {
			return m, m.updateInput(msg)
		}
		return m, m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.up):
		if m.cursor > NAV_CURSOR_TOP {
			m.cursor--
		} else {
			m.vp.ScrollUp(NAV_SCROLL_STEP)
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < min(m.vp.Height-1, len(m.lines)-1) {
			m.cursor++
		} else {
			m.vp.ScrollDown(NAV_SCROLL_STEP)
		}
	case key.Matches(msg, m.keys.add):
		return func() tea.Msg {
			return event.AddFieldMsg{}
		}
	}

	field := m.CurrentField()
	if field == nil {
		return nil
	}
	id := field.ID

	switch {
	case key.Matches(msg, m.keys.fold):
		if field.IsNested() {
			m.collapsed[id] = !m.collapsed[id]
			m.rebuild()
		}
	case key.Matches(msg, m.keys.addChild):
		return func() tea.Msg {
			return event.AddFieldMsg{ParentID: id}
		}
	case key.Matches(msg, m.keys.remove):
		return func() tea.Msg {
			return event.DeleteFieldMsg{ID: id}
		}
	case key.Matches(msg, m.keys.cycleType):
		next := field.Type().Next()
		return func() tea.Msg {
			return event.ChangeTypeMsg{ID: id, Type: next}
		}
	case key.Matches(msg, m.keys.rename):
		return m.startEdit(editKey, id, field.Key)
	case key.Matches(msg, m.keys.editValue):
		value, ok := field.Value()
		if !ok {
			return func() tea.Msg {
				return event.SetStatusMsg{Message: "nested fields have no value", Status: event.Warn}
			}
		}
		return m.startEdit(editValue, id, valueText(value))
	}

	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.commit):
		mode, id, value := m.mode, m.editID, m.input.Value()
		m.stopEdit()
		if mode == editKey {
			return func() tea.Msg {
				return event.RenameFieldMsg{ID: id, Key: value}
			}
		}
		return func() tea.Msg {
			return event.SetValueMsg{ID: id, Raw: value}
		}
	case key.Matches(msg, m.keys.cancel):
		m.stopEdit()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) View() string {
	m.vp.SetContent(m.render())

	views := []string{
		m.renderTopBar(),
		m.style.Render(m.vp.View()),
	}
	if m.Editing() {
		views = append(views, m.input.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

// Help renders the short help of the tree keys.
func (m *Model) Help() string {
	return m.help.View(m.keys)
}

func (m *Model) Editing() bool {
	return m.mode != editNone
}

// CurrentField returns the field under the cursor, nil for an empty forest.
func (m *Model) CurrentField() *schema.Field {
	index := m.cursor + m.vp.YOffset
	if index < 0 || index >= len(m.lines) {
		return nil
	}
	return m.lines[index].field
}

func (m *Model) Focus() tea.Cmd {
	m.focus = true
	m.style = m.style.Border(lipgloss.ThickBorder()).BorderForeground(theme.Blue())
	// nothing to send
	return nil
}

func (m *Model) Blur() {
	m.focus = false
	m.style = m.style.Border(lipgloss.NormalBorder()).BorderForeground(theme.Overlay0())
}

// utils
func (m *Model) startEdit(mode editMode, id string, value string) tea.Cmd {
	m.mode = mode
	m.editID = id
	if mode == editKey {
		m.input.Prompt = "key: "
	} else {
		m.input.Prompt = "value: "
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopEdit() {
	m.mode = editNone
	m.editID = ""
	m.input.Blur()
	m.input.Reset()
}

// reveal expands every ancestor of the field so that it gets a line.
func (m *Model) reveal(id string) {
	chain, ok := schema.PathTo(m.fields, id)
	if !ok {
		return
	}
	for _, ancestor := range chain[:len(chain)-1] {
		delete(m.collapsed, ancestor.ID)
	}
}

func (m *Model) rebuild() {
	m.lines = m.buildLines(m.fields, 0, []*Line{})
	m.vp.SetContent(m.render())
	m.clampCursor()
}

func (m *Model) buildLines(fields []*schema.Field, level int, lines []*Line) []*Line {
	for _, field := range fields {
		collapsed := m.collapsed[field.ID]
		lines = append(lines, newLine(field, level, collapsed, len(lines)))
		if field.IsNested() && !collapsed {
			lines = m.buildLines(field.Children(), level+1, lines)
		}
	}
	return lines
}

func (m *Model) render() string {
	if len(m.lines) == 0 {
		return lipgloss.NewStyle().
			Foreground(theme.Subtext1()).
			Padding(0, 1).
			Render(NAV_EMPTY_PLACEHOLDER)
	}

	var result strings.Builder
	leftPadding := len(strconv.Itoa(len(m.lines)))

	for _, line := range m.lines {
		result.WriteString(line.render(leftPadding, m.isCursor(line.index), m.vp.Width, !m.focus) + "\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}

func (m *Model) isCursor(index int) bool {
	return m.cursor == index-m.vp.YOffset
}

func (m *Model) setCursor(id string) {
	for _, line := range m.lines {
		if line.field.ID == id {
			m.setCursorIndex(line.index)
			return
		}
	}
}

func (m *Model) setCursorIndex(index int) {
	if index < m.vp.YOffset || index >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(max(index-NAV_JUMP_MARGIN, 0))
	}
	m.cursor = index - m.vp.YOffset
}

func (m *Model) clampCursor() {
	if len(m.lines) == 0 {
		m.cursor = 0
		m.vp.SetYOffset(0)
		return
	}
	if last := len(m.lines) - 1; m.cursor+m.vp.YOffset > last {
		m.setCursorIndex(last)
	}
}

func (m *Model) renderTopBar() string {
	title := lipgloss.NewStyle().Margin(0, 1).Render("Fields")
	field := m.CurrentField()
	if field == nil {
		return title
	}

	chain, _ := schema.PathTo(m.fields, field.ID)
	path := make([]string, len(chain))
	for i, f := range chain {
		path[i] = f.Key
	}
	pointer := lipgloss.NewStyle().Foreground(theme.Blue()).Render(schema.Pointer(path))
	return lipgloss.JoinHorizontal(lipgloss.Left, title, pointer)
}

func valueText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
