package d2

import "regexp"

// Composition keywords declare that a diagram defines multiple boards
// rendered as sequential states.
var reComposition = regexp.MustCompile(`(?i)(layers|scenarios|steps)\s*:\s*\{`)

// HasComposition reports whether cleaned code declares a multi-board
// composition: one of the composition keywords followed by a colon and an
// opening brace.
func HasComposition(code string) bool {
	return reComposition.MatchString(code)
}
