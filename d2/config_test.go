package d2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"oss.terrastruct.com/util-go/go2"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		base    Config
		overlay Config
		want    Config
	}{
		{
			"set field wins",
			Config{Pad: go2.Pointer(int64(10))},
			Config{Pad: go2.Pointer(int64(20))},
			Config{Pad: go2.Pointer(int64(20))},
		},
		{
			"unset field never clears",
			Config{Pad: go2.Pointer(int64(10)), Sketch: go2.Pointer(true)},
			Config{},
			Config{Pad: go2.Pointer(int64(10)), Sketch: go2.Pointer(true)},
		},
		{
			"explicit false overrides true",
			Config{Sketch: go2.Pointer(true)},
			Config{Sketch: go2.Pointer(false)},
			Config{Sketch: go2.Pointer(false)},
		},
		{
			"explicit zero overrides",
			Config{Pad: go2.Pointer(int64(100))},
			Config{Pad: go2.Pointer(int64(0))},
			Config{Pad: go2.Pointer(int64(0))},
		},
		{
			"fields merge independently",
			Config{Layout: go2.Pointer(LayoutDagre), Theme: go2.Pointer(int64(1))},
			Config{Theme: go2.Pointer(int64(5)), Center: go2.Pointer(true)},
			Config{
				Layout: go2.Pointer(LayoutDagre),
				Theme:  go2.Pointer(int64(5)),
				Center: go2.Pointer(true),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.base.Merge(tt.overlay))
		})
	}
}

func TestMergeChain(t *testing.T) {
	defaults := Config{Pad: go2.Pointer(int64(10))}
	directive := Config{Pad: go2.Pointer(int64(20))}
	inline := Config{Pad: go2.Pointer(int64(30))}

	merged := defaults.Merge(directive)
	assert.Equal(t, int64(20), *merged.Pad)

	merged = merged.Merge(inline)
	assert.Equal(t, int64(30), *merged.Pad)
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		value string
		want  Layout
		ok    bool
	}{
		{"dagre", LayoutDagre, true},
		{"DAGRE", LayoutDagre, true},
		{"Elk", LayoutELK, true},
		{"tala", LayoutTala, true},
		{"cola", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		layout, ok := ParseLayout(tt.value)
		assert.Equal(t, tt.ok, ok, "value %q", tt.value)
		assert.Equal(t, tt.want, layout, "value %q", tt.value)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		value string
		want  Format
		ok    bool
	}{
		{"svg", FormatSVG, true},
		{"SVG", FormatSVG, true},
		{"base64_svg", FormatBase64SVG, true},
		{"png", FormatPNG, true},
		{"gif", FormatGIF, true},
		{"jpeg", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		format, ok := ParseFormat(tt.value)
		assert.Equal(t, tt.ok, ok, "value %q", tt.value)
		assert.Equal(t, tt.want, format, "value %q", tt.value)
	}
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, ".svg", FormatSVG.Ext())
	assert.Equal(t, ".svg", FormatBase64SVG.Ext())
	assert.Equal(t, ".png", FormatPNG.Ext())
	assert.Equal(t, ".gif", FormatGIF.Ext())
}
