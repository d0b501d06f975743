// Package extraction derives profile field suggestions from raw resume
// text. The parser is deliberately heuristic: a handful of line rules and
// regular expressions, tuned to how resumes are usually laid out, with no
// natural-language understanding behind it.
package extraction

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

var excessiveBlankLines = regexp.MustCompile(`\n\n\n+`)

// CleanText normalizes resume text prior to extraction: CRLF to LF,
// collapsed runs of spaces within lines, and at most one blank line in a
// row.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			cleaned = append(cleaned, "")
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		body := multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
		cleaned = append(cleaned, strings.Repeat(" ", indent)+body)
	}

	result := strings.Join(cleaned, "\n")
	result = excessiveBlankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// nonEmptyLines splits text into trimmed lines with empties removed.
func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// truncate limits text to max runes, protecting downstream storage from
// pathological resume dumps.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
