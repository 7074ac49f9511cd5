package d2

import (
	"regexp"
	"strings"
)

const blockFence = `"""`

type scanState int

const (
	stateDefault scanState = iota
	stateSingleQuoted
	stateDoubleQuoted
)

var (
	reLineTrailing = regexp.MustCompile(`[ \t]+\n`)
	reBlankRun     = regexp.MustCompile(`\n{2,}`)
)

// StripComments removes `#` line comments and triple-quoted block comments
// from diagram code. String literals are left byte-for-byte intact: quote
// state carries across newlines, a quote preceded by an odd run of
// backslashes does not toggle it, and a triple-quote sequence never toggles
// it either since those are reserved for block comment delimiters. The
// result is normalized so no blank lines are left behind where comments were
// removed, which makes the whole pass idempotent.
func StripComments(source string) string {
	var out strings.Builder
	out.Grow(len(source))

	state := stateDefault
	for i := 0; i < len(source); {
		ch := source[i]

		if ch == '"' && strings.HasPrefix(source[i:], blockFence) && !isEscaped(source, i) {
			if state != stateDefault {
				out.WriteString(blockFence)
				i += 3
				continue
			}
			end := strings.Index(source[i+3:], blockFence)
			if end < 0 {
				// Unterminated opener stays in the output as three
				// literal quotes.
				out.WriteString(blockFence)
				i += 3
				continue
			}
			i = skipBlockComment(source, i, i+3+end)
			continue
		}

		switch state {
		case stateSingleQuoted:
			if ch == '\'' && !isEscaped(source, i) {
				state = stateDefault
			}
		case stateDoubleQuoted:
			if ch == '"' && !isEscaped(source, i) {
				state = stateDefault
			}
		default:
			switch ch {
			case '\'':
				if !isEscaped(source, i) {
					state = stateSingleQuoted
				}
			case '"':
				if !isEscaped(source, i) {
					state = stateDoubleQuoted
				}
			case '#':
				i = skipLineComment(source, i)
				continue
			}
		}

		out.WriteByte(ch)
		i++
	}

	return normalize(out.String())
}

// skipLineComment returns the scan position after a `#` comment starting at
// i. A comment filling its whole line goes together with its newline and the
// next line's indentation; a trailing comment keeps the newline.
func skipLineComment(source string, i int) int {
	end := strings.IndexByte(source[i:], '\n')
	if end < 0 {
		return len(source)
	}
	end += i
	if isLineLeading(source, i) {
		return skipIndent(source, end+1)
	}
	return end
}

// skipBlockComment returns the scan position after a block comment whose
// delimiters start at open and close. A comment whose opener leads its line
// also takes the following newline and indentation with it, so the next real
// line keeps its effective indentation.
func skipBlockComment(source string, open, close int) int {
	next := close + 3
	if isLineLeading(source, open) && next < len(source) && source[next] == '\n' {
		return skipIndent(source, next+1)
	}
	return next
}

func skipIndent(source string, i int) int {
	for i < len(source) && (source[i] == ' ' || source[i] == '\t') {
		i++
	}
	return i
}

// isEscaped reports whether the character at i sits behind an odd run of
// backslashes.
func isEscaped(source string, i int) bool {
	backslashes := 0
	for j := i - 1; j >= 0 && source[j] == '\\'; j-- {
		backslashes++
	}
	return backslashes%2 == 1
}

// isLineLeading reports whether only horizontal whitespace precedes position
// i on its line.
func isLineLeading(source string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch source[j] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// normalize strips horizontal whitespace hanging before newlines, collapses
// blank line runs, and drops whitespace-only trailing lines while keeping
// the final newline of the last content line.
func normalize(text string) string {
	text = reLineTrailing.ReplaceAllString(text, "\n")
	text = reBlankRun.ReplaceAllString(text, "\n")

	trimmed := strings.TrimRight(text, " \t\n")
	switch {
	case trimmed == "":
		return ""
	case trimmed == text:
		return text
	case strings.ContainsRune(text[len(trimmed):], '\n'):
		return trimmed + "\n"
	default:
		return text
	}
}
