package notation

import (
	"regexp"
	"strings"
)

var (
	nagPattern        = regexp.MustCompile(`\$\d+`)
	resultPattern     = regexp.MustCompile(`(?:^|\s)(?:1-0|0-1|1/2-1/2|\*)(?:\s|$)`)
	annotationPattern = regexp.MustCompile(`[!?]+`)
	enPassantPattern  = regexp.MustCompile(`(?:^|\s)e\.p\.`)
)

// Strip removes everything from movetext that is not a move or a move
// number: {comments} and (variations) at any nesting depth, [tag pairs],
// ";" rest-of-line comments, $N glyphs, !/? marks, results and detached
// "e.p." markers. Whitespace, including line breaks, collapses to single
// spaces.
func Strip(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	braces, parens, brackets := 0, 0, 0
	lineComment := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case lineComment:
			if c == '\n' || c == '\r' {
				lineComment = false
				sb.WriteByte(' ')
			}
		case c == '{':
			braces++
		case c == '}' && braces > 0:
			braces--
			sb.WriteByte(' ')
		case braces > 0:
		case c == '(':
			parens++
		case c == ')' && parens > 0:
			parens--
			sb.WriteByte(' ')
		case parens > 0:
		case c == '[':
			brackets++
		case c == ']' && brackets > 0:
			brackets--
			sb.WriteByte(' ')
		case brackets > 0:
		case c == ';':
			lineComment = true
		default:
			sb.WriteByte(c)
		}
	}

	out := sb.String()
	out = nagPattern.ReplaceAllString(out, " ")
	out = annotationPattern.ReplaceAllString(out, "")
	out = enPassantPattern.ReplaceAllString(out, " ")
	// Results may sit next to each other; run until nothing changes.
	for {
		next := resultPattern.ReplaceAllString(out, " ")
		if next == out {
			break
		}
		out = next
	}
	return strings.Join(strings.Fields(out), " ")
}
