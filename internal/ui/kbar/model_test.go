package kbar

import (
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flavono123/schemabuilder/internal/schema"
	"github.com/flavono123/schemabuilder/internal/ui/event"
)

func exampleForest() schema.Forest {
	return schema.Forest{
		{ID: "1", Key: "name", Payload: schema.StringValue("Alice")},
		{ID: "2", Key: "address", Payload: schema.Children{
			{ID: "3", Key: "city", Payload: schema.StringValue("NYC")},
		}},
	}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

var _ = Describe("Kbar", func() {
	var m *Model

	BeforeEach(func() {
		m = NewModel(exampleForest())
		m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
		m.Update(ShowMsg{})
	})

	It("should list every field by pointer in tree order", func() {
		Expect(m.Visible()).To(BeTrue())
		Expect(m.Pointers()).To(Equal([]string{"#/name", "#/address", "#/address/city"}))
	})

	It("should fuzzy filter pointers", func() {
		typeText(m, "city")
		Expect(m.Pointers()).To(Equal([]string{"#/address/city"}))
	})

	It("should show nothing without a match", func() {
		typeText(m, "zzz")
		Expect(m.Pointers()).To(BeEmpty())
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		Expect(cmd).To(BeNil())
	})

	It("should resolve an exact reference", func() {
		typeText(m, "#/address")
		Expect(m.Pointers()).To(Equal([]string{"#/address"}))
	})

	It("should jump to the picked field and hide", func() {
		typeText(m, "city")
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		batch, ok := cmd().(tea.BatchMsg)
		Expect(ok).To(BeTrue())
		Expect(batch).To(HaveLen(2))
		Expect(batch[0]()).To(Equal(event.JumpToFieldMsg{ID: "3"}))
		Expect(batch[1]()).To(Equal(HideMsg{}))
	})

	It("should move the hovered item", func() {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		item, ok := m.hovered()
		Expect(ok).To(BeTrue())
		Expect(item.id).To(Equal("2"))

		m.Update(tea.KeyMsg{Type: tea.KeyUp})
		item, _ = m.hovered()
		Expect(item.id).To(Equal("1"))
	})

	It("should hide on esc and reset the query", func() {
		typeText(m, "city")
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		Expect(cmd()).To(Equal(HideMsg{}))

		m.Update(HideMsg{})
		Expect(m.Visible()).To(BeFalse())
		Expect(m.Pointers()).To(HaveLen(3))
	})

	It("should ignore keys while hidden", func() {
		m.Update(HideMsg{})
		typeText(m, "city")
		Expect(m.Pointers()).To(HaveLen(3))
	})

	It("should follow forest changes", func() {
		m.SetFields(exampleForest()[:1])
		Expect(m.Pointers()).To(Equal([]string{"#/name"}))
	})
})
