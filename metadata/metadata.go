package metadata

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"

	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
	"oss.terrastruct.com/util-go/go2"

	"github.com/ueaner/d2md/d2"
)

const delimiter = "---"

// Meta is the document-level configuration carried in YAML frontmatter.
type Meta struct {
	// Title names untitled diagrams of the document. It comes from the
	// frontmatter title, or from the file name when the frontmatter does
	// not set one.
	Title string

	// D2 holds the rendering options of the frontmatter d2 section. They
	// sit between command-line defaults and per-block configuration.
	D2 d2.Config
}

type frontmatter struct {
	Title string    `yaml:"title"`
	D2    *settings `yaml:"d2"`
}

// settings mirrors the d2 frontmatter section. Every field is optional;
// key names match the directive header flags.
type settings struct {
	Layout            *string  `yaml:"layout"`
	Theme             *int64   `yaml:"theme"`
	DarkTheme         *int64   `yaml:"dark-theme"`
	Pad               *int64   `yaml:"pad"`
	AnimateInterval   *int64   `yaml:"animate-interval"`
	Timeout           *int64   `yaml:"timeout"`
	Sketch            *bool    `yaml:"sketch"`
	Center            *bool    `yaml:"center"`
	Scale             *float64 `yaml:"scale"`
	Target            *string  `yaml:"target"`
	ForceAppendix     *bool    `yaml:"force-appendix"`
	Format            *string  `yaml:"format"`
	Directory         *string  `yaml:"directory"`
	OnlyConvertMarked *bool    `yaml:"only-convert-marked"`
}

// ExtractMeta reads document metadata: the YAML frontmatter when the file
// opens with one, plus a title fallback derived from the file name. The
// document itself is left untouched.
func ExtractMeta(data []byte, filename string) (*Meta, error) {
	meta := &Meta{}

	if block, ok := frontmatterBlock(data); ok {
		var front frontmatter
		if err := yaml.Unmarshal(block, &front); err != nil {
			return nil, karma.Format(err, "unable to parse frontmatter")
		}

		meta.Title = strings.TrimSpace(front.Title)
		if front.D2 != nil {
			meta.D2 = front.D2.config()
		}
	}

	if meta.Title == "" && filename != "" {
		meta.Title = titleFromFilename(filename)
	}

	return meta, nil
}

// frontmatterBlock returns the lines between the opening and closing
// frontmatter delimiters. A document that does not open with the delimiter,
// or never closes it, has no frontmatter.
func frontmatterBlock(data []byte) ([]byte, bool) {
	scanner := bufio.NewScanner(bytes.NewBuffer(data))
	if !scanner.Scan() || strings.TrimRight(scanner.Text(), " \t") != delimiter {
		return nil, false
	}

	var block bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimRight(line, " \t") == delimiter {
			return block.Bytes(), true
		}

		block.WriteString(line)
		block.WriteByte('\n')
	}

	return nil, false
}

func (settings *settings) config() d2.Config {
	var config d2.Config

	if settings.Layout != nil {
		if layout, ok := d2.ParseLayout(*settings.Layout); ok {
			config.Layout = go2.Pointer(layout)
		} else {
			log.Warningf(nil, "unknown layout engine %q in frontmatter", *settings.Layout)
		}
	}
	if settings.Format != nil {
		if format, ok := d2.ParseFormat(*settings.Format); ok {
			config.Format = go2.Pointer(format)
		} else {
			log.Warningf(nil, "unknown output format %q in frontmatter", *settings.Format)
		}
	}

	config.Theme = settings.Theme
	config.DarkTheme = settings.DarkTheme
	config.Pad = settings.Pad
	config.AnimateInterval = settings.AnimateInterval
	config.Timeout = settings.Timeout
	config.Sketch = settings.Sketch
	config.Center = settings.Center
	config.Scale = settings.Scale
	config.Target = settings.Target
	config.ForceAppendix = settings.ForceAppendix
	config.Directory = settings.Directory
	config.OnlyConvertMarked = settings.OnlyConvertMarked

	return config
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	return cases.Title(language.English).String(title)
}
