package nav

import "github.com/flavono123/schemabuilder/internal/schema"

// SetFieldsMsg replaces the rendered forest after a mutation.
type SetFieldsMsg struct {
	Fields schema.Forest
	// FocusID moves the cursor onto this field when set
	FocusID string
}
