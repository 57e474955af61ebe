package result

import "github.com/flavono123/schemabuilder/internal/preview"

// RefreshMsg re-renders the preview after the forest changed.
type RefreshMsg struct {
	Input preview.Input
}
