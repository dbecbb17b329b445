package docs

import (
	"regexp"
	"strings"
)

// README scraping is best-effort regex work over arbitrary markdown; when a
// heuristic finds nothing, callers fall back to repo metadata.
var (
	headingPattern = regexp.MustCompile(`(?m)^#{1,2}\s+(.+?)\s*$`)
	// badge images, optionally wrapped in a link
	badgePattern = regexp.MustCompile(`\[?!\[[^\]]*\]\([^\)]*\)\]?(\([^\)]*\))?`)
	htmlTag      = regexp.MustCompile(`<[^>]+>`)
)

// Scrape extracts a title and the first prose paragraph from README
// markdown.
func Scrape(markdown string) (title, summary string) {
	if m := headingPattern.FindStringSubmatch(markdown); m != nil {
		title = strings.TrimSpace(htmlTag.ReplaceAllString(m[1], ""))
	}

	summary = firstParagraph(markdown)
	return title, summary
}

// firstParagraph returns the first block of consecutive prose lines,
// skipping headings, badges, code fences, block quotes, and HTML.
func firstParagraph(markdown string) string {
	var block []string
	inFence := false

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		cleaned := strings.TrimSpace(badgePattern.ReplaceAllString(trimmed, ""))
		cleaned = strings.TrimSpace(htmlTag.ReplaceAllString(cleaned, ""))

		if cleaned == "" || isMarkup(cleaned) {
			if len(block) > 0 {
				break
			}
			continue
		}

		block = append(block, cleaned)
	}

	return strings.Join(block, " ")
}

func isMarkup(line string) bool {
	switch {
	case strings.HasPrefix(line, "#"),
		strings.HasPrefix(line, ">"),
		strings.HasPrefix(line, "|"),
		strings.HasPrefix(line, "---"),
		strings.HasPrefix(line, "==="),
		strings.HasPrefix(line, "- "),
		strings.HasPrefix(line, "* "):
		return true
	}
	return false
}
