package d2

import (
	"strings"

	"oss.terrastruct.com/util-go/go2"
)

// InlineConfig is the option subset a diagram can set through the
// `vars.d2-config` block in its own source.
type InlineConfig struct {
	LayoutEngine string
	ThemeID      *int64
	DarkThemeID  *int64
	Sketch       *bool
	Center       *bool
	Pad          *int64
}

// ParseInlineConfig reads the embedded configuration block out of cleaned
// diagram code. Every line must split into exactly key and value on a single
// colon; lines with no colon or more than one are skipped, and unknown keys
// are ignored. Matching single or double quotes around a value are stripped.
func ParseInlineConfig(code string) InlineConfig {
	var config InlineConfig

	body := configBlock(code)
	if body == "" {
		return config
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := unquote(strings.TrimSpace(parts[1]))
		switch key {
		case "layout-engine":
			config.LayoutEngine = value
		case "theme-id":
			config.ThemeID = optionalInt(value)
		case "dark-theme-id":
			config.DarkThemeID = optionalInt(value)
		case "sketch":
			config.Sketch = go2.Pointer(value == "true")
		case "center":
			config.Center = go2.Pointer(value == "true")
		case "pad":
			config.Pad = go2.Pointer(markedInt(value))
		}
	}

	return config
}

// Config translates the inline fields into the common configuration
// namespace. The layout engine name goes through the same enum lookup the
// directive parser uses and stays unset when it does not resolve.
func (inline InlineConfig) Config() Config {
	config := Config{
		Theme:     inline.ThemeID,
		DarkTheme: inline.DarkThemeID,
		Sketch:    inline.Sketch,
		Center:    inline.Center,
		Pad:       inline.Pad,
	}
	if inline.LayoutEngine != "" {
		if layout, ok := ParseLayout(inline.LayoutEngine); ok {
			config.Layout = go2.Pointer(layout)
		}
	}
	return config
}

// unquote strips one pair of matching single or double quotes around value.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
