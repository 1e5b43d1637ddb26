package models

import "strings"

// Slugify derives a URL-safe slug from an article title: lowercase, keep
// only letters, digits, spaces and hyphens, then collapse whitespace runs
// into single hyphens. Slugs are computed on read, never stored, so a title
// edit changes the slug on the next read.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		return -1
	}, s)
	s = strings.TrimSpace(s)
	return strings.Join(strings.Fields(s), "-")
}
