package result

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flavono123/schemabuilder/internal/preview"
	"github.com/flavono123/schemabuilder/internal/schema"
	"github.com/flavono123/schemabuilder/internal/ui/event"
)

const exampleJSON = `{
  "name": "Alice",
  "address": {
    "city": "NYC"
  }
}`

func exampleForest(name string) schema.Forest {
	return schema.Forest{
		{ID: "1", Key: name, Payload: schema.StringValue("Alice")},
		{ID: "2", Key: "address", Payload: schema.Children{
			{ID: "3", Key: "city", Payload: schema.StringValue("NYC")},
		}},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var _ = Describe("Result", func() {
	var m *Model

	BeforeEach(func() {
		m = NewModel(
			preview.Input{Fields: exampleForest("name")},
			preview.Options{Format: preview.JSON, Indent: 2},
			"",
		)
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	})

	It("should render the initial preview without highlights", func() {
		Expect(m.Text()).To(Equal(exampleJSON))
		Expect(m.Changed(1)).To(BeFalse())
		Expect(m.View()).To(ContainSubstring("Fields: 2  Size: 41 chars"))
	})

	Describe("RefreshMsg", func() {
		It("should highlight only the changed lines", func() {
			previous := schema.Serialize(exampleForest("name"))
			m.Update(RefreshMsg{Input: preview.Input{Fields: exampleForest("first"), Previous: previous}})

			Expect(m.Text()).To(ContainSubstring(`"first": "Alice"`))
			Expect(m.Changed(0)).To(BeFalse())
			Expect(m.Changed(1)).To(BeTrue())
			Expect(m.Changed(2)).To(BeFalse())
		})

		It("should clear highlights when nothing changed", func() {
			m.Update(RefreshMsg{Input: preview.Input{Fields: exampleForest("first")}})
			m.Update(RefreshMsg{Input: preview.Input{Fields: exampleForest("first")}})
			Expect(m.Changed(1)).To(BeFalse())
		})
	})

	Describe("Format", func() {
		It("should cycle formats without highlighting", func() {
			m.Update(runes("f"))
			Expect(m.Format()).To(Equal(preview.YAML))
			Expect(m.Text()).To(Equal("name: Alice\naddress:\n  city: NYC"))
			for i := 0; i < 3; i++ {
				Expect(m.Changed(i)).To(BeFalse())
			}
		})

		It("should wrap back to json", func() {
			for range preview.Formats {
				m.Update(runes("f"))
			}
			Expect(m.Format()).To(Equal(preview.JSON))
			Expect(m.Text()).To(Equal(exampleJSON))
		})

		It("should export with the extension of the current format", func() {
			Expect(m.ExportPath()).To(Equal("schema.json"))
			m.Update(runes("f"))
			Expect(m.ExportPath()).To(Equal("schema.yaml"))
		})
	})

	Describe("Export", func() {
		It("should write the preview and report where", func() {
			path := filepath.Join(GinkgoT().TempDir(), "out", "schema.json")
			m = NewModel(
				preview.Input{Fields: exampleForest("name")},
				preview.Options{Format: preview.JSON, Indent: 2},
				path,
			)

			_, cmd := m.Update(runes("x"))
			Expect(cmd()).To(Equal(event.SetStatusMsg{Message: "exported to " + path, Status: event.Info}))

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(exampleJSON + "\n"))
		})
	})

	It("should switch border on focus", func() {
		Expect(m.Focus()).To(BeNil())
		Expect(m.focus).To(BeTrue())
		m.Blur()
		Expect(m.focus).To(BeFalse())
	})
})
