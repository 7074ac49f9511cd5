package d2

import (
	"math"
	"strconv"
	"strings"

	"oss.terrastruct.com/util-go/go2"
)

// Layout selects the engine used to lay out a diagram.
type Layout string

const (
	LayoutDagre Layout = "dagre"
	LayoutELK   Layout = "elk"
	LayoutTala  Layout = "tala"
)

var layouts = map[string]Layout{
	"DAGRE": LayoutDagre,
	"ELK":   LayoutELK,
	"TALA":  LayoutTala,
}

// ParseLayout resolves a user-supplied engine name. Unknown names report
// false so the caller can leave the field unset.
func ParseLayout(value string) (Layout, bool) {
	layout, ok := layouts[strings.ToUpper(value)]
	return layout, ok
}

// Format selects the output produced for a rendered diagram.
type Format string

const (
	FormatSVG       Format = "svg"
	FormatBase64SVG Format = "base64_svg"
	FormatPNG       Format = "png"
	FormatGIF       Format = "gif"
)

var formats = map[string]Format{
	"SVG":        FormatSVG,
	"BASE64_SVG": FormatBase64SVG,
	"PNG":        FormatPNG,
	"GIF":        FormatGIF,
}

// ParseFormat resolves a user-supplied format name. Unknown names report
// false so the caller can leave the field unset.
func ParseFormat(value string) (Format, bool) {
	format, ok := formats[strings.ToUpper(value)]
	return format, ok
}

// Ext returns the asset file extension for the format.
func (format Format) Ext() string {
	switch format {
	case FormatPNG:
		return ".png"
	case FormatGIF:
		return ".gif"
	default:
		return ".svg"
	}
}

// NotANumber marks an integer option whose text could not be parsed. The
// marker is kept in the configuration instead of being replaced with a
// default, so the bad value stays visible all the way to the render engine.
const NotANumber int64 = math.MinInt64

// DefaultAnimateInterval is applied to multi-board diagrams that do not set
// an interval themselves.
const DefaultAnimateInterval int64 = 1200

// Config holds the rendering options of a single diagram. Nil fields are
// unset and fall through to the next layer during Merge; explicit false and
// zero therefore survive merging.
type Config struct {
	ForceAppendix     *bool
	Layout            *Layout
	Theme             *int64
	DarkTheme         *int64
	Pad               *int64
	AnimateInterval   *int64
	Timeout           *int64
	Sketch            *bool
	Center            *bool
	Scale             *float64
	Target            *string
	Format            *Format
	Directory         *string
	OnlyConvertMarked *bool
}

// Merge returns a copy of base where every field set in overlay wins. Unset
// overlay fields never clear a base value.
func (base Config) Merge(overlay Config) Config {
	return Config{
		ForceAppendix:     override(base.ForceAppendix, overlay.ForceAppendix),
		Layout:            override(base.Layout, overlay.Layout),
		Theme:             override(base.Theme, overlay.Theme),
		DarkTheme:         override(base.DarkTheme, overlay.DarkTheme),
		Pad:               override(base.Pad, overlay.Pad),
		AnimateInterval:   override(base.AnimateInterval, overlay.AnimateInterval),
		Timeout:           override(base.Timeout, overlay.Timeout),
		Sketch:            override(base.Sketch, overlay.Sketch),
		Center:            override(base.Center, overlay.Center),
		Scale:             override(base.Scale, overlay.Scale),
		Target:            override(base.Target, overlay.Target),
		Format:            override(base.Format, overlay.Format),
		Directory:         override(base.Directory, overlay.Directory),
		OnlyConvertMarked: override(base.OnlyConvertMarked, overlay.OnlyConvertMarked),
	}
}

func override[T any](base, overlay *T) *T {
	if overlay != nil {
		return overlay
	}
	return base
}

// optionalInt parses value into a settable field, leaving it unset when the
// text is not numeric.
func optionalInt(value string) *int64 {
	number, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return go2.Pointer(number)
}

// markedInt parses value, substituting the NotANumber marker when the text
// is not numeric.
func markedInt(value string) int64 {
	number, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return NotANumber
	}
	return number
}

// markedFloat parses value, substituting IEEE NaN when the text is not
// numeric.
func markedFloat(value string) float64 {
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return number
}
