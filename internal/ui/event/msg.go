package event

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flavono123/schemabuilder/internal/schema"
)

// nav -> root, field mutations requested by the user

type AddFieldMsg struct {
	// ParentID is empty for a top-level field
	ParentID string
}

type DeleteFieldMsg struct {
	ID string
}

type RenameFieldMsg struct {
	ID  string
	Key string
}

type ChangeTypeMsg struct {
	ID   string
	Type schema.Type
}

type SetValueMsg struct {
	ID  string
	Raw string
}

// kbar -> root -> nav
type JumpToFieldMsg struct {
	ID string
}

// -> root

type Status uint

const (
	Error Status = iota
	Warn
	Info
)

type SetStatusMsg struct {
	Message string
	Status  Status
}

const statusDuration = time.Millisecond * 1060

// ShowStatus hides the status shown as seq once it expires.
func ShowStatus(seq int) tea.Cmd {
	return tea.Tick(statusDuration, func(t time.Time) tea.Msg {
		return HideStatusMsg{Seq: seq}
	})
}

type HideStatusMsg struct {
	// Seq of the status this hides; a newer status ignores it
	Seq int
}
