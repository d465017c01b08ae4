// Package textutils provides the line-level text helpers used by the paystub
// section parsers: label extraction, token globs and multi-label scanning.
package textutils

import (
	"regexp"
	"strings"
)

var leadingLabelPattern = regexp.MustCompile(`^[A-Za-z\s]+`)

// LeadingLabel returns the leading run of letters and whitespace of line,
// trimmed. It returns "" when the line does not start with a letter or space.
func LeadingLabel(line string) string {
	return strings.TrimSpace(leadingLabelPattern.FindString(line))
}

// TextAfter returns the text following the first occurrence of label in line.
// When label does not occur (or is empty), the whole line is returned.
func TextAfter(line, label string) string {
	if label == "" {
		return line
	}
	if idx := strings.Index(line, label); idx >= 0 {
		return line[idx+len(label):]
	}
	return line
}

// Lines splits text on newlines.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// ContainsAny reports whether s contains any of the needles (case-sensitive).
func ContainsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// ContainsAllFold reports whether lower-cased s contains every needle. Needles
// are expected in lower case.
func ContainsAllFold(s string, needles ...string) bool {
	lower := strings.ToLower(s)
	for _, n := range needles {
		if !strings.Contains(lower, n) {
			return false
		}
	}
	return true
}

// Snippet shortens s to at most n runes for diagnostics.
func Snippet(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}
