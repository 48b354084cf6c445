package blog

import (
	"regexp"
	"strings"
)

// The post-processing helpers are pure and total: every function accepts
// arbitrary (including empty) input and returns an empty or default result
// rather than failing.

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	excessSpaces   = regexp.MustCompile(` {2,}`)
	wordToken      = regexp.MustCompile(`\b\w+\b`)
	headingLine    = regexp.MustCompile(`(?m)^(#{1,6}\s+.+)$`)
)

// CleanContent collapses runs of three or more newlines to exactly two,
// runs of two or more spaces to one, and trims surrounding whitespace.
// It is idempotent.
func CleanContent(text string) string {
	if text == "" {
		return ""
	}

	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = excessSpaces.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// ExtractTitleAndContent splits cleaned model output into a title and body.
// The first `# `-prefixed line becomes the title; failing that, a short first
// line is promoted to the title; failing that, a default title is synthesized
// from the topic. The returned content joins the remaining non-blank lines
// with a blank line between each.
func ExtractTitleAndContent(text, topic string) (string, string) {
	fallbackTitle := topic + ": A Comprehensive Guide"
	if text == "" {
		return fallbackTitle, ""
	}

	lines := strings.Split(text, "\n")
	title := ""
	contentLines := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "# ") && title == "":
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case line != "":
			contentLines = append(contentLines, line)
		}
	}

	if title == "" && len(contentLines) > 0 {
		// Promote a short first line to the title, markers stripped.
		candidate := strings.TrimSpace(strings.TrimLeft(contentLines[0], "#* "))
		if candidate != "" && len(candidate) < 100 {
			title = candidate
			contentLines = contentLines[1:]
		}
	}

	if title == "" {
		title = fallbackTitle
	}

	return title, strings.Join(contentLines, "\n\n")
}

// CountWords returns the number of maximal alphanumeric runs in the text.
func CountWords(text string) int {
	if text == "" {
		return 0
	}

	return len(wordToken.FindAllString(text, -1))
}

// AddFormatting surrounds every Markdown heading line (levels 1-6) with
// exactly one blank line above and below.
func AddFormatting(content string) string {
	if content == "" {
		return ""
	}

	content = headingLine.ReplaceAllString(content, "\n$1\n")
	content = excessNewlines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
