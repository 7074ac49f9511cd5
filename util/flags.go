package util

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	altsrctoml "github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var filename string

var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:      "files",
		Aliases:   []string{"f"},
		Value:     "",
		Usage:     "process specified markdown file(s). Supports file globbing patterns (needs to be quoted).",
		TakesFile: true,
		Sources:   cli.NewValueSourceChain(cli.EnvVar("D2MD_FILES"), altsrctoml.TOML("files", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.BoolFlag{
		Name:    "write",
		Aliases: []string{"w"},
		Value:   false,
		Usage:   "rewrite the source files in place instead of printing to stdout.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_WRITE"), altsrctoml.TOML("write", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.StringFlag{
		Name:      "output",
		Aliases:   []string{"o"},
		Value:     "",
		Usage:     "write converted documents into the specified directory instead of printing to stdout.",
		TakesFile: true,
		Sources:   cli.NewValueSourceChain(cli.EnvVar("D2MD_OUTPUT"), altsrctoml.TOML("output", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.StringFlag{
		Name:    "assets-dir",
		Value:   "d2",
		Usage:   "store rendered diagrams in the specified directory, resolved relative to each document.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_ASSETS_DIR"), altsrctoml.TOML("assets-dir", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.BoolFlag{
		Name:    "dry-run",
		Value:   false,
		Usage:   "report what would be rendered and don't write anything.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_DRY_RUN"), altsrctoml.TOML("dry-run", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.BoolFlag{
		Name:    "continue-on-error",
		Value:   false,
		Usage:   "don't exit if an error occurs while processing a file, continue processing remaining files.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_CONTINUE_ON_ERROR"), altsrctoml.TOML("continue-on-error", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.BoolFlag{
		Name:    "ci",
		Value:   false,
		Usage:   "run on CI mode. It won't fail if files are not found.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_CI"), altsrctoml.TOML("ci", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.BoolFlag{
		Name:    "only-convert-marked",
		Value:   false,
		Usage:   "convert only blocks opened with ```d2 render, leave plain ```d2 blocks untouched.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_ONLY_CONVERT_MARKED"), altsrctoml.TOML("only-convert-marked", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.StringFlag{
		Name:    "d2-bin",
		Value:   "d2",
		Usage:   "use the specified d2 executable for rendering.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_D2_BIN"), altsrctoml.TOML("d2-bin", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.BoolFlag{
		Name:    "embedded",
		Value:   false,
		Usage:   "render with the embedded d2 engine, never look for the d2 executable.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_EMBEDDED"), altsrctoml.TOML("embedded", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.StringFlag{
		Name:    "format",
		Value:   "svg",
		Usage:   "output format for rendered diagrams. Possible values: svg, base64_svg, png, gif.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_FORMAT"), altsrctoml.TOML("format", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.StringFlag{
		Name:    "layout",
		Value:   "dagre",
		Usage:   "layout engine for rendered diagrams. Possible values: dagre, elk, tala.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_LAYOUT"), altsrctoml.TOML("layout", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.IntFlag{
		Name:    "theme",
		Usage:   "theme ID for rendered diagrams, see d2 themes list.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_THEME"), altsrctoml.TOML("theme", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.IntFlag{
		Name:    "dark-theme",
		Usage:   "theme ID to use when the viewer's browser is in dark mode.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_DARK_THEME"), altsrctoml.TOML("dark-theme", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.IntFlag{
		Name:    "pad",
		Usage:   "padding in pixels around the rendered diagram.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_PAD"), altsrctoml.TOML("pad", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.IntFlag{
		Name:    "animate-interval",
		Usage:   "interval in milliseconds for animating multi-board diagrams.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_ANIMATE_INTERVAL"), altsrctoml.TOML("animate-interval", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.IntFlag{
		Name:    "timeout",
		Usage:   "rendering timeout in seconds.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_TIMEOUT"), altsrctoml.TOML("timeout", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.BoolFlag{
		Name:    "sketch",
		Value:   false,
		Usage:   "render diagrams in a hand-drawn style.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_SKETCH"), altsrctoml.TOML("sketch", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.BoolFlag{
		Name:    "center",
		Value:   false,
		Usage:   "center the SVG in the containing viewbox.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_CENTER"), altsrctoml.TOML("center", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.FloatFlag{
		Name:    "scale",
		Usage:   "scaling factor for rendered diagrams.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_SCALE"), altsrctoml.TOML("scale", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.StringFlag{
		Name:    "target",
		Value:   "",
		Usage:   "target board to render. Pass an empty value to target the root board.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_TARGET"), altsrctoml.TOML("target", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.BoolFlag{
		Name:    "force-appendix",
		Value:   false,
		Usage:   "always append the appendix with tooltips and links to SVG output.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_FORCE_APPENDIX"), altsrctoml.TOML("force-appendix", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.StringFlag{
		Name:    "color",
		Value:   "auto",
		Usage:   "display logs in color. Possible values: auto, never.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_COLOR"), altsrctoml.TOML("color", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "set the log level. Possible values: TRACE, DEBUG, INFO, WARNING, ERROR, FATAL.",
		Sources: cli.NewValueSourceChain(cli.EnvVar("D2MD_LOG_LEVEL"), altsrctoml.TOML("log-level", altsrc.NewStringPtrSourcer(&filename))),
	},
	&cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Value:       ConfigFilePath(),
		Usage:       "use the specified configuration file.",
		TakesFile:   true,
		Sources:     cli.NewValueSourceChain(cli.EnvVar("D2MD_CONFIG")),
		Destination: &filename,
	},
}
