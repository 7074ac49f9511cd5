package markdown

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"

	"github.com/ueaner/d2md/attachment"
	"github.com/ueaner/d2md/d2"
	"github.com/ueaner/d2md/render"
)

const defaultAssetsDir = "d2"

// Renderer produces image bytes for prepared diagram code.
type Renderer interface {
	Render(ctx context.Context, code string, config d2.Config) ([]byte, error)
}

// Converter rewrites fenced d2 blocks of a markdown document into rendered
// diagrams: SVG markup inline, or links to image assets stored next to the
// document.
type Converter struct {
	Renderer Renderer
	Defaults d2.Config

	// BaseDir is the document's directory; relative asset directories
	// resolve against it.
	BaseDir string

	// DefaultTitle names diagrams whose block carries no title of its own.
	DefaultTitle string

	// DryRun reports what would be rendered without writing anything.
	DryRun bool
}

// Convert processes every d2 block in source and returns the rewritten
// document together with the assets it produced. Blocks the configuration
// excludes stay untouched.
func (converter *Converter) Convert(ctx context.Context, source []byte) ([]byte, []attachment.Attachment, error) {
	blocks := FindBlocks(source)
	if len(blocks) == 0 {
		return source, nil, nil
	}

	log.Tracef(nil, "converting %d d2 blocks", len(blocks))

	var (
		result      bytes.Buffer
		attachments []attachment.Attachment
		offset      int
	)

	for i, block := range blocks {
		config, code := d2.Prepare(block.Code, converter.Defaults)

		if config.OnlyConvertMarked != nil && *config.OnlyConvertMarked && !block.Marked {
			log.Debugf(nil, "skipping unmarked d2 block #%d", i+1)
			continue
		}
		if code == "" {
			log.Warningf(nil, "skipping empty d2 block #%d", i+1)
			continue
		}

		replacement, converted, att, err := converter.renderBlock(ctx, block, config, code)
		if err != nil {
			return nil, nil, karma.Format(err, "unable to convert d2 block #%d", i+1)
		}
		if !converted {
			continue
		}

		result.Write(source[offset:block.Start])
		result.WriteString(replacement)
		offset = block.End

		attachments = append(attachments, att)
	}

	result.Write(source[offset:])

	return result.Bytes(), attachments, nil
}

// renderBlock turns one diagram block into its markdown replacement,
// rendering only when no stored asset carries the same content-addressed
// name yet.
func (converter *Converter) renderBlock(
	ctx context.Context,
	block Block,
	config d2.Config,
	code string,
) (string, bool, attachment.Attachment, error) {
	title := block.Title
	if title == "" {
		title = converter.DefaultTitle
	}

	format := render.OutputFormat(config)
	checksum := attachment.InputChecksum(code, render.Args(config))
	filename := attachment.Filename(title, checksum, format.Ext())

	dir := defaultAssetsDir
	if config.Directory != nil && *config.Directory != "" {
		dir = *config.Directory
	}
	storeDir := dir
	if !filepath.IsAbs(storeDir) {
		storeDir = filepath.Join(converter.BaseDir, dir)
	}

	if converter.DryRun {
		log.Infof(nil, "would render d2 block into %q", filepath.Join(storeDir, filename))
		return "", false, attachment.Attachment{}, nil
	}

	att := attachment.Attachment{
		Name:     title,
		Filename: filename,
		Checksum: checksum,
	}

	data, found := attachment.Open(storeDir, filename)
	if found {
		log.Infof(nil, "reusing attachment %q", filename)
	} else {
		rendered, err := converter.Renderer.Render(ctx, code, config)
		if err != nil {
			return "", false, att, err
		}
		data = rendered

		att.FileBytes = data
		if _, err := attachment.Store(storeDir, att); err != nil {
			return "", false, att, err
		}
	}
	att.FileBytes = data

	link := path.Join(filepath.ToSlash(dir), filename)

	return replacement(format, data, title, link), true, att, nil
}

// replacement builds the markdown that takes the fenced block's place.
func replacement(format d2.Format, data []byte, title, link string) string {
	switch format {
	case d2.FormatBase64SVG:
		return fmt.Sprintf(
			"<img src=\"data:image/svg+xml;base64,%s\" alt=%q />\n",
			base64.StdEncoding.EncodeToString(data),
			title,
		)
	case d2.FormatPNG, d2.FormatGIF:
		return fmt.Sprintf("![%s](%s)\n", title, link)
	default:
		return strings.TrimRight(string(data), "\n") + "\n"
	}
}
