package preview

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultExportPath is where a preview in format f is written when no path
// is configured.
func DefaultExportPath(f Format) string {
	return "schema." + f.Ext()
}

// Export writes the rendered preview text to path, creating parent
// directories as needed.
func Export(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to export preview: %w", err)
	}
	return nil
}
