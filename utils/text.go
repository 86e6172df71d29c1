package utils

import "strings"

// Indent prefixes every non-empty line of s with a tab.
func Indent(s string) string {
	return PrependToLines(s, "\t")
}

// PrependToLines prefixes every line of s with prefix. Empty lines get the
// prefix without trailing whitespace.
func PrependToLines(s string, prefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	trimmed := strings.TrimRight(prefix, " \t")
	for i, l := range lines {
		if l == "" {
			lines[i] = trimmed
		} else {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// LinesOfCode counts the lines of s that are neither blank nor pure `//` comments.
func LinesOfCode(s string) int {
	n := 0
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "//") {
			continue
		}
		n++
	}
	return n
}

// ReplaceLast replaces the last occurrence of old in s with new.
// It reports false when old does not occur.
func ReplaceLast(s, old, new string) (string, bool) {
	i := strings.LastIndex(s, old)
	if i < 0 {
		return s, false
	}
	return s[:i] + new + s[i+len(old):], true
}
