package d2

import "strings"

// braceBody returns the half-open span strictly between the first `{` at or
// after offset and its depth-matched `}`. It counts nesting iteratively and
// reports false when no opening brace follows the offset or the text ends
// before the depth returns to zero. The matcher is not quote aware, so it
// must only run on code that already had its comments stripped.
func braceBody(text string, offset int) (int, int, bool) {
	open := strings.IndexByte(text[offset:], '{')
	if open < 0 {
		return 0, 0, false
	}
	open += offset

	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return open + 1, i, true
			}
		}
	}
	return 0, 0, false
}

// configBlock locates the body of a `d2-config` block nested inside a `vars`
// block. The marker lookup is textual, so the first occurrence of the marker
// text wins even if it sits inside an unrelated value. Missing markers or
// unbalanced braces yield an empty body.
func configBlock(code string) string {
	vars := strings.Index(code, "vars")
	if vars < 0 {
		return ""
	}
	start, end, ok := braceBody(code, vars)
	if !ok {
		return ""
	}

	body := code[start:end]
	marker := strings.Index(body, "d2-config")
	if marker < 0 {
		return ""
	}
	start, end, ok = braceBody(body, marker)
	if !ok {
		return ""
	}
	return body[start:end]
}
