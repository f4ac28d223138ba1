package tui

import (
	"regexp"
	"strings"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripAnsiCodes removes ANSI escape sequences, leaving the plain text.
func stripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// normalizeOutput trims trailing whitespace from each line and drops
// trailing empty lines so terminal width does not affect golden files.
func normalizeOutput(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}
