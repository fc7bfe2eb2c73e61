// Package links generates external URLs from entity names and titles.
package links

import "strings"

// WikiURL joins a wiki base URL with a page name, encoding spaces as
// underscores.
func WikiURL(base, name string) string {
	if base == "" || name == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.ReplaceAll(name, " ", "_")
}

// AudioURL joins an audio-platform base URL with a slugified title.
func AudioURL(base, title string) string {
	slug := Slug(title)
	if base == "" || slug == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + slug
}

// Slug lowercases the input, strips apostrophes, replaces every other
// non-alphanumeric run with a single hyphen, and trims edge hyphens.
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	hyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		case r == '\'' || r == '’':
			// Apostrophes vanish without splitting the word.
		default:
			hyphen = true
		}
	}
	return b.String()
}
