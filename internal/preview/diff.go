package preview

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// ChangedLines returns the 0-based indexes of lines in next that were
// inserted or modified relative to prev.
func ChangedLines(prev, next string) map[int]bool {
	changed := map[int]bool{}
	if prev == next {
		return changed
	}

	// line mode needs every line newline-terminated to count them
	prev = terminate(prev)
	next = terminate(next)

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(prev, next)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	line := 0
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		switch d.Type {
		case diffpatch.DiffEqual:
			line += n
		case diffpatch.DiffInsert:
			for i := 0; i < n; i++ {
				changed[line+i] = true
			}
			line += n
		}
	}
	return changed
}

func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
