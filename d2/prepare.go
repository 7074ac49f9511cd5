package d2

import "oss.terrastruct.com/util-go/go2"

// Prepare runs the full extraction pipeline over one raw diagram block:
// directive header split, comment removal, embedded configuration lookup,
// and the final merge. It returns the effective configuration together with
// the cleaned code that goes to the render engine.
//
// Merge precedence, later wins per field: defaults, directive header, inline
// configuration. A multi-board diagram that still has no animate interval
// after the merge gets DefaultAnimateInterval.
func Prepare(source string, defaults Config) (Config, string) {
	directives, code := ParseDirectives(source)
	code = StripComments(code)

	config := defaults.
		Merge(directives).
		Merge(ParseInlineConfig(code).Config())

	if config.AnimateInterval == nil && HasComposition(code) {
		config.AnimateInterval = go2.Pointer(DefaultAnimateInterval)
	}

	return config, code
}
