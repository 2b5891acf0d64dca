package adapter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// notAvailable is the placeholder for fields a listing does not carry.
const notAvailable = "N/A"

// CombineURL resolves path against base. Absolute paths are returned as-is,
// root-relative and plain-relative paths are appended to base without its
// trailing slash. An empty path yields an empty result.
func CombineURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return strings.TrimRight(base, "/") + path
	}
	return strings.TrimRight(base, "/") + "/" + path
}

// extractText returns the selection's text with whitespace collapsed.
// An empty selection yields "".
func extractText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// joinTexts extracts the text of every node in sel and joins the non-empty
// ones with ", ".
func joinTexts(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := extractText(s); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, ", ")
}

// orDefault returns s, or def when s is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
