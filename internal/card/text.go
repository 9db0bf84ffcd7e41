package card

import (
	"regexp"
	"unicode/utf8"
)

var highlightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`#[\p{L}0-9_]+`),
	regexp.MustCompile(`@[\p{L}0-9_]+`),
	regexp.MustCompile(`https?://[\w\-._~:/?#\[\]@!$&'()*+,;=%]+`),
}

// glyph is one rune of card text and whether it is drawn in the accent colour.
type glyph struct {
	r      rune
	accent bool
}

type line []glyph

func (l line) String() string {
	rs := make([]rune, len(l))
	for i, g := range l {
		rs[i] = g.r
	}
	return string(rs)
}

// highlight marks hashtags, mentions and URLs in text.
func highlight(text string) []glyph {
	glyphs := make([]glyph, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		glyphs = append(glyphs, glyph{r: r})
	}

	for _, re := range highlightPatterns {
		for _, m := range re.FindAllStringIndex(text, -1) {
			start := utf8.RuneCountInString(text[:m[0]])
			end := start + utf8.RuneCountInString(text[m[0]:m[1]])
			for i := start; i < end; i++ {
				glyphs[i].accent = true
			}
		}
	}
	return glyphs
}

// wrap breaks glyphs into lines of at most cols runes. Newlines always
// break; words longer than a line are split.
func wrap(glyphs []glyph, cols int) []line {
	if cols < 1 {
		cols = 1
	}

	var lines []line
	for _, para := range split(glyphs, '\n') {
		var cur line
		for _, word := range split(para, ' ') {
			if len(word) == 0 {
				continue
			}
			if len(cur) > 0 && len(cur)+1+len(word) <= cols {
				cur = append(cur, glyph{r: ' '})
				cur = append(cur, word...)
				continue
			}
			if len(cur) > 0 {
				lines = append(lines, cur)
				cur = nil
			}
			for len(word) > cols {
				lines = append(lines, word[:cols])
				word = word[cols:]
			}
			cur = append(line(nil), word...)
		}
		lines = append(lines, cur)
	}
	return lines
}

func split(glyphs []glyph, sep rune) [][]glyph {
	var parts [][]glyph
	start := 0
	for i, g := range glyphs {
		if g.r == sep {
			parts = append(parts, glyphs[start:i])
			start = i + 1
		}
	}
	return append(parts, glyphs[start:])
}
