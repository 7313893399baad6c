// Package display prepares text from question sources for the terminal.
package display

import (
	"html"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Text decodes HTML entities and removes escape sequences and control
// characters, so remote text renders as plain characters only. Newlines
// and tabs collapse to spaces.
func Text(s string) string {
	s = html.UnescapeString(s)
	s = ansi.Strip(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			r = ' '
		case unicode.IsControl(r), r == unicode.ReplacementChar:
			continue
		}
		if r == ' ' {
			if space {
				continue
			}
			space = true
		} else {
			space = false
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Texts applies Text to every element of in.
func Texts(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Text(s)
	}
	return out
}
