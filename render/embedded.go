package render

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"

	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2layouts/d2elklayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	d2log "oss.terrastruct.com/d2/lib/log"
	"oss.terrastruct.com/d2/lib/textmeasure"
	"oss.terrastruct.com/util-go/go2"

	"github.com/ueaner/d2md/d2"
)

// renderEmbedded compiles and renders a diagram in process. GIF output and
// the tala engine are only available through the d2 executable, and
// multi-board animation is not applied here.
func renderEmbedded(ctx context.Context, code string, config d2.Config) ([]byte, error) {
	format := OutputFormat(config)
	if format == d2.FormatGIF {
		return nil, errors.New("gif output requires the d2 executable")
	}

	layout := d2.LayoutDagre
	if config.Layout != nil {
		layout = *config.Layout
	}
	if layout == d2.LayoutTala {
		return nil, errors.New("the tala engine requires the d2 executable")
	}
	if config.AnimateInterval != nil {
		log.Debugf(nil, "animate interval is only applied by the d2 executable")
	}

	ctx = d2log.WithDefault(ctx)

	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return nil, err
	}
	layoutResolver := func(engine string) (d2graph.LayoutGraph, error) {
		if layout == d2.LayoutELK {
			return d2elklayout.DefaultLayout, nil
		}
		return d2dagrelayout.DefaultLayout, nil
	}

	renderOpts := &d2svg.RenderOpts{
		ThemeID:     config.Theme,
		DarkThemeID: config.DarkTheme,
		Sketch:      config.Sketch,
		Center:      config.Center,
	}
	if config.Pad != nil && *config.Pad != d2.NotANumber {
		renderOpts.Pad = config.Pad
	}
	if config.Scale != nil && !math.IsNaN(*config.Scale) {
		renderOpts.Scale = config.Scale
	}
	if format == d2.FormatSVG {
		renderOpts.NoXMLTag = go2.Pointer(true)
	}
	compileOpts := &d2lib.CompileOptions{
		LayoutResolver: layoutResolver,
		Ruler:          ruler,
	}

	diagram, _, err := d2lib.Compile(ctx, code, compileOpts, renderOpts)
	if err != nil {
		return nil, karma.Format(err, "unable to compile diagram")
	}

	svg, err := d2svg.Render(diagram, renderOpts)
	if err != nil {
		return nil, karma.Format(err, "unable to render diagram")
	}

	if format == d2.FormatPNG {
		scale := 1.0
		if config.Scale != nil && !math.IsNaN(*config.Scale) {
			scale = *config.Scale
		}
		return rasterize(ctx, svg, scale)
	}

	return svg, nil
}

// rasterize screenshots the SVG in a headless browser to produce a PNG.
func rasterize(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	var (
		result []byte
		model  *dom.BoxModel
	)
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Navigate(fmt.Sprintf("data:image/svg+xml;base64,%s", base64.StdEncoding.EncodeToString(svg))),
		chromedp.ScreenshotScale(`document.querySelector("svg > svg")`, scale, &result, chromedp.ByJSPath),
		chromedp.Dimensions(`document.querySelector("svg > svg")`, &model, chromedp.ByJSPath),
	)
	if err != nil {
		return nil, karma.Format(err, "unable to rasterize diagram")
	}

	log.Debugf(nil, "rasterized diagram: %dx%d", model.Width, model.Height)

	return result, nil
}
