package nav

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flavono123/schemabuilder/internal/schema"
	"github.com/flavono123/schemabuilder/internal/ui/event"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// name, address{city}
func exampleForest() schema.Forest {
	return schema.Forest{
		{ID: "1", Key: "name", Payload: schema.StringValue("Alice")},
		{ID: "2", Key: "address", Payload: schema.Children{
			{ID: "3", Key: "city", Payload: schema.StringValue("NYC")},
		}},
	}
}

func press(m *Model, msg tea.KeyMsg) tea.Msg {
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

var _ = Describe("Nav", func() {
	var m *Model

	BeforeEach(func() {
		m = NewModel(exampleForest())
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	})

	It("should render a line per visible field", func() {
		Expect(m.lines).To(HaveLen(3))
		Expect(m.CurrentField().ID).To(Equal("1"))
		Expect(m.View()).To(ContainSubstring("#/name"))
	})

	Describe("Cursor", func() {
		It("should move down and stop at the last line", func() {
			for i := 0; i < 5; i++ {
				m.Update(tea.KeyMsg{Type: tea.KeyDown})
			}
			Expect(m.CurrentField().ID).To(Equal("3"))
		})

		It("should move up with k", func() {
			m.Update(runes("j"))
			m.Update(runes("k"))
			Expect(m.CurrentField().ID).To(Equal("1"))
		})
	})

	Describe("Fold", func() {
		It("should hide and show the children of a nested field", func() {
			m.Update(runes("j"))
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			Expect(m.lines).To(HaveLen(2))

			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			Expect(m.lines).To(HaveLen(3))
		})

		It("should ignore scalar fields", func() {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			Expect(m.lines).To(HaveLen(3))
		})
	})

	Describe("Mutations", func() {
		It("should request a top-level field", func() {
			Expect(press(m, runes("a"))).To(Equal(event.AddFieldMsg{}))
		})

		It("should request a child of the current field", func() {
			m.Update(runes("j"))
			Expect(press(m, runes("n"))).To(Equal(event.AddFieldMsg{ParentID: "2"}))
		})

		It("should request deletion of the current field", func() {
			Expect(press(m, runes("d"))).To(Equal(event.DeleteFieldMsg{ID: "1"}))
		})

		It("should request the next type", func() {
			Expect(press(m, runes("t"))).To(Equal(event.ChangeTypeMsg{ID: "1", Type: schema.Number}))
		})

		It("should warn when editing the value of a nested field", func() {
			m.Update(runes("j"))
			msg := press(m, runes("e"))
			Expect(msg).To(Equal(event.SetStatusMsg{Message: "nested fields have no value", Status: event.Warn}))
			Expect(m.Editing()).To(BeFalse())
		})
	})

	Describe("Edit", func() {
		It("should rename on enter", func() {
			m.Update(runes("r"))
			Expect(m.Editing()).To(BeTrue())

			m.Update(runes("x"))
			Expect(press(m, tea.KeyMsg{Type: tea.KeyEnter})).To(Equal(event.RenameFieldMsg{ID: "1", Key: "namex"}))
			Expect(m.Editing()).To(BeFalse())
		})

		It("should set the value on enter", func() {
			m.Update(runes("e"))
			m.Update(runes("!"))
			Expect(press(m, tea.KeyMsg{Type: tea.KeyEnter})).To(Equal(event.SetValueMsg{ID: "1", Raw: "Alice!"}))
		})

		It("should treat tree keys as text while editing", func() {
			m.Update(runes("r"))
			m.Update(runes("d"))
			Expect(m.Editing()).To(BeTrue())
			Expect(m.input.Value()).To(Equal("named"))
		})

		It("should keep long input whole", func() {
			long := strings.Repeat("v", 300)
			m.Update(runes("e"))
			m.Update(runes(long))
			Expect(press(m, tea.KeyMsg{Type: tea.KeyEnter})).To(Equal(event.SetValueMsg{ID: "1", Raw: "Alice" + long}))
		})

		It("should discard the input on esc", func() {
			m.Update(runes("r"))
			m.Update(runes("x"))
			Expect(press(m, tea.KeyMsg{Type: tea.KeyEsc})).To(BeNil())
			Expect(m.Editing()).To(BeFalse())
		})
	})

	Describe("SetFieldsMsg", func() {
		It("should reveal and focus a field inside a collapsed parent", func() {
			m.Update(runes("j"))
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			Expect(m.lines).To(HaveLen(2))

			m.Update(SetFieldsMsg{Fields: exampleForest(), FocusID: "3"})
			Expect(m.lines).To(HaveLen(3))
			Expect(m.CurrentField().ID).To(Equal("3"))
		})

		It("should keep the cursor inside the forest after a deletion", func() {
			m.Update(runes("j"))
			m.Update(runes("j"))

			m.Update(SetFieldsMsg{Fields: exampleForest()[:1]})
			Expect(m.CurrentField().ID).To(Equal("1"))
		})

		It("should have no current field for an empty forest", func() {
			m.Update(SetFieldsMsg{Fields: schema.Forest{}})
			Expect(m.CurrentField()).To(BeNil())
			Expect(m.View()).To(ContainSubstring(NAV_EMPTY_PLACEHOLDER))
			Expect(press(m, runes("d"))).To(BeNil())
			Expect(press(m, runes("a"))).To(Equal(event.AddFieldMsg{}))
		})
	})

	It("should jump to a field", func() {
		m.Update(event.JumpToFieldMsg{ID: "3"})
		Expect(m.CurrentField().ID).To(Equal("3"))
	})
})
