package report

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultStatusGlyphs are the markers upstream summaries use to flag an
// item's status. Domain icons (🛌, 🍺, 🏋️) are deliberately absent.
var DefaultStatusGlyphs = []string{
	"✅", "❌", "⚠️", "⚠", "🟢", "🟡", "🟠", "🔴", "✔️", "✔", "✖️", "✖", "☑️", "⛔", "🚫", "❗",
}

const (
	variationSelector = '\uFE0F'
	zeroWidthJoiner   = '\u200D'
)

// StripStatusGlyphs removes any run of leading status glyphs from s.
func StripStatusGlyphs(s string, glyphs []string) string {
	out := strings.TrimSpace(s)
	for {
		stripped := false
		for _, g := range glyphs {
			if g != "" && strings.HasPrefix(out, g) {
				out = strings.TrimLeft(out[len(g):], string(variationSelector))
				out = strings.TrimSpace(out)
				stripped = true
			}
		}
		if !stripped {
			return out
		}
	}
}

// HasStatusGlyph reports whether s contains any of glyphs.
func HasStatusGlyph(s string, glyphs []string) bool {
	for _, g := range glyphs {
		if g != "" && strings.Contains(s, g) {
			return true
		}
	}
	return false
}

// StripLeadingSymbols removes leading emoji and other pictographic glyphs,
// together with dash or bullet separators that stand alone. Title
// punctuation such as "$", "#" or quotes is kept.
func StripLeadingSymbols(s string) string {
	for {
		s = strings.TrimLeftFunc(s, isGlyphRune)
		r, size := utf8.DecodeRuneInString(s)
		if !strings.ContainsRune(separatorRunes, r) {
			return s
		}
		rest := s[size:]
		if next, _ := utf8.DecodeRuneInString(rest); rest != "" && !unicode.IsSpace(next) {
			return s
		}
		s = rest
	}
}

const separatorRunes = "-–—•·*:"

func isGlyphRune(r rune) bool {
	return unicode.IsSpace(r) ||
		r == zeroWidthJoiner ||
		unicode.Is(unicode.Variation_Selector, r) ||
		unicode.Is(unicode.So, r) ||
		unicode.Is(unicode.Sk, r)
}

var bulletMarkers = []string{"-", "•", "*", "–", "—", "·"}

// BulletText reports whether line is a bullet and returns the text after
// the marker.
func BulletText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, m := range bulletMarkers {
		if !strings.HasPrefix(trimmed, m) {
			continue
		}
		rest := trimmed[len(m):]
		if rest == "" || !unicode.IsSpace([]rune(rest)[0]) {
			continue
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// NormalizeApostrophes replaces typographic apostrophes with ASCII ones.
func NormalizeApostrophes(s string) string {
	return strings.NewReplacer("’", "'", "‘", "'", "`", "'").Replace(s)
}
