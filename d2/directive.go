package d2

import (
	"strings"

	"oss.terrastruct.com/util-go/go2"
)

// ParseDirectives splits a flag-style header off the top of a diagram block.
// A header opens with exactly three double quotes followed by a newline and
// runs to the next triple-quote sequence; blocks that do not start this way
// come back unchanged with an empty configuration, as do blocks whose header
// never closes.
//
// Header lines carry `--key=value` or `--key value` pairs; a bare `--key`
// means "true". Lines without the two-dash prefix and unknown keys are
// ignored.
func ParseDirectives(source string) (Config, string) {
	var config Config

	if !strings.HasPrefix(source, blockFence+"\n") {
		return config, source
	}
	end := strings.Index(source[4:], blockFence)
	if end < 0 {
		return config, source
	}
	header := source[4 : 4+end]
	code := strings.TrimSpace(source[4+end+3:])

	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "--") {
			continue
		}
		key, value := splitDirective(line[2:])
		switch key {
		case "force-appendix":
			config.ForceAppendix = go2.Pointer(value == "true")
		case "layout":
			if layout, ok := ParseLayout(value); ok {
				config.Layout = go2.Pointer(layout)
			}
		case "theme":
			config.Theme = optionalInt(value)
		case "dark-theme":
			config.DarkTheme = optionalInt(value)
		case "pad":
			config.Pad = go2.Pointer(markedInt(value))
		case "animate-interval":
			config.AnimateInterval = go2.Pointer(markedInt(value))
		case "timeout":
			config.Timeout = go2.Pointer(markedInt(value))
		case "sketch":
			config.Sketch = go2.Pointer(value == "true")
		case "center":
			config.Center = go2.Pointer(value == "true")
		case "scale":
			config.Scale = go2.Pointer(markedFloat(value))
		case "target":
			config.Target = go2.Pointer(value)
		case "stdout-format":
			if format, ok := ParseFormat(value); ok {
				config.Format = go2.Pointer(format)
			}
		case "directory":
			config.Directory = go2.Pointer(value)
		}
	}

	return config, code
}

// splitDirective divides a header line (already free of its two-dash prefix)
// into key and value: at the first `=` when one is present, otherwise at the
// first whitespace run. A missing value means "true".
func splitDirective(line string) (string, string) {
	var key, value string
	if i := strings.IndexByte(line, '='); i >= 0 {
		key, value = line[:i], line[i+1:]
	} else if j := strings.IndexAny(line, " \t"); j >= 0 {
		key, value = line[:j], line[j:]
	} else {
		key = line
	}

	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if value == "" {
		value = "true"
	}
	return key, value
}
