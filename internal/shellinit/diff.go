package shellinit

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line diff from oldText to newText, or "" when they are equal.
// Removed lines start with "- ", added lines with "+ " and unchanged lines
// with two spaces.
func Diff(oldName, newName, oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("--- %s\n", oldName))
	sb.WriteString(fmt.Sprintf("+++ %s\n", newName))
	sb.WriteString("\n")

	for _, diff := range diffs {
		lines := strings.Split(diff.Text, "\n")
		// Remove trailing empty string from split
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			switch diff.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString("- " + line + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString("+ " + line + "\n")
			case diffmatchpatch.DiffEqual:
				sb.WriteString("  " + line + "\n")
			}
		}
	}

	return sb.String()
}
