package parse

import (
	"html"
	"regexp"
	"strings"
)

// DescriptionLimit is the rune length descriptions are truncated to before
// they reach an Article.
const DescriptionLimit = 150

var (
	scriptRe = regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>`)
	styleRe  = regexp.MustCompile(`(?i)<style[^>]*>[\s\S]*?</style>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s+`)
	imgSrcRe = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)
)

// StripHTML reduces markup to plain text: tags removed, entities decoded,
// whitespace collapsed.
func StripHTML(s string) string {
	s = scriptRe.ReplaceAllString(s, "")
	s = styleRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanDescription strips markup from a feed description and truncates it to
// DescriptionLimit runes.
func CleanDescription(s string) string {
	return Truncate(StripHTML(s), DescriptionLimit)
}

// Truncate cuts s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// FirstImageSrc returns the src of the first <img> tag in an HTML fragment,
// or "" when there is none.
func FirstImageSrc(htmlFragment string) string {
	match := imgSrcRe.FindStringSubmatch(htmlFragment)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
