package kbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/flavono123/schemabuilder/internal/schema"
	"github.com/flavono123/schemabuilder/internal/ui/event"
	"github.com/flavono123/schemabuilder/internal/ui/theme"
)

const (
	KBAR_WIDTH_DIV                 = 3
	KBAR_SEARCH_RESULTS_MAX_HEIGHT = 10

	KBAR_SCROLL_STEP = 1
)

// Model is the field finder: fuzzy search over the JSON pointers of every
// field, or an exact "#/a/b" reference.
type Model struct {
	keys    keyMap
	visible bool
	style   lipgloss.Style

	fields   schema.Forest
	items    kbarItems
	filtered kbarItems

	input      textinput.Model
	srViewport viewport.Model
	cursor     int
}

func NewModel(fields schema.Forest) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search or jump to #/path..."
	ti.SetCursor(0)
	ti.Prompt = "🔍 "
	ti.Width = 30

	m := &Model{
		keys: newKeyMap(),
		style: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Mauve()),
		input:      ti,
		srViewport: viewport.New(0, KBAR_SEARCH_RESULTS_MAX_HEIGHT),
	}
	m.SetFields(fields)

	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		m.visible = true
		m.reset()
		return m, m.input.Focus()
	case HideMsg:
		m.visible = false
		m.reset()
		m.input.Blur()
	case tea.WindowSizeMsg:
		m.srViewport.Width = msg.Width / KBAR_WIDTH_DIV
		m.srViewport.Height = KBAR_SEARCH_RESULTS_MAX_HEIGHT
	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		return m, m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.hide):
		return Hide
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.srViewport.ScrollUp(KBAR_SCROLL_STEP)
		}
		return nil
	case key.Matches(msg, m.keys.down):
		if m.cursor < min(len(m.filtered)-1, m.srViewport.Height-1) {
			m.cursor++
		} else if m.cursor+m.srViewport.YOffset < len(m.filtered)-1 {
			m.srViewport.ScrollDown(KBAR_SCROLL_STEP)
		}
		return nil
	case key.Matches(msg, m.keys.pick):
		item, ok := m.hovered()
		if !ok {
			return nil
		}
		return tea.Batch(
			func() tea.Msg { return event.JumpToFieldMsg{ID: item.id} },
			Hide,
		)
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if prev != m.input.Value() {
		m.filter()
	}
	return cmd
}

func (m *Model) View() string {
	inputStyle := lipgloss.NewStyle().Margin(0, 0, 1, 0)
	m.srViewport.SetContent(m.renderResults())
	return m.style.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			inputStyle.Render(m.input.View()),
			m.srViewport.View(),
		),
	)
}

func (m *Model) Visible() bool {
	return m.visible
}

// SetFields rebuilds the searchable items after the forest changed.
func (m *Model) SetFields(fields schema.Forest) {
	m.fields = fields
	m.items = nil
	schema.Walk(fields, func(f *schema.Field, path []string) bool {
		m.items = append(m.items, kbarItem{
			id:        f.ID,
			pointer:   schema.Pointer(path),
			fieldType: f.Type(),
		})
		return true
	})
	m.filter()
}

// Pointers lists the pointers currently matching the query, best first.
func (m *Model) Pointers() []string {
	pointers := make([]string, len(m.filtered))
	for i, item := range m.filtered {
		pointers[i] = item.pointer
	}
	return pointers
}

// hovered returns the item under the cursor.
func (m *Model) hovered() (kbarItem, bool) {
	index := m.cursor + m.srViewport.YOffset
	if index < 0 || index >= len(m.filtered) {
		return kbarItem{}, false
	}
	return m.filtered[index], true
}

func (m *Model) reset() {
	m.input.Reset()
	m.filter()
}

func (m *Model) filter() {
	m.cursor = 0
	m.srViewport.SetYOffset(0)
	m.filtered = m.items.filter(m.fields, m.input.Value())
}

func (m *Model) renderResults() string {
	if len(m.filtered) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Overlay0()).Render("No results found.")
	}

	var result []string
	for index, item := range m.filtered {
		hovered := m.cursor == index-m.srViewport.YOffset
		result = append(result, item.render(m.srViewport.Width, hovered))
	}
	return strings.Join(result, "\n")
}

// subcomponents(not model)
type kbarItem struct {
	id        string
	pointer   string
	fieldType schema.Type
}

type kbarItems []kbarItem

func (i kbarItem) render(width int, hovered bool) string {
	l := lipgloss.NewStyle().
		MaxWidth(width).
		Padding(0, 0, 0, 1)
	if hovered {
		l = l.Background(theme.Overlay0())
	}
	t := lipgloss.NewStyle().Foreground(theme.Subtext1())

	return l.Render(lipgloss.JoinHorizontal(
		lipgloss.Left,
		i.pointer,
		" ",
		t.Render(string(i.fieldType)),
	))
}

func (items kbarItems) filter(fields schema.Forest, query string) kbarItems {
	if query == "" {
		return items
	}

	if strings.HasPrefix(query, "#/") {
		if field, ok := schema.ResolveRef(fields, query); ok {
			for _, item := range items {
				if item.id == field.ID {
					return kbarItems{item}
				}
			}
		}
	}

	pointers := make([]string, len(items))
	for i, item := range items {
		pointers[i] = item.pointer
	}

	var filtered kbarItems
	for _, match := range fuzzy.Find(query, pointers) {
		filtered = append(filtered, items[match.Index])
	}
	return filtered
}
