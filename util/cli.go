package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kovetskiy/lorg"
	"github.com/reconquest/pkg/log"
	"github.com/urfave/cli/v3"
	"oss.terrastruct.com/util-go/go2"

	"github.com/ueaner/d2md/d2"
	"github.com/ueaner/d2md/markdown"
	"github.com/ueaner/d2md/metadata"
	"github.com/ueaner/d2md/render"
)

func RunD2MD(ctx context.Context, cmd *cli.Command) error {
	if err := SetLogLevel(cmd); err != nil {
		return err
	}

	if cmd.String("color") == "never" {
		log.GetLogger().SetFormat(
			lorg.NewFormat(
				`${time:2006-01-02 15:04:05.000} ${level:%s:left:true} ${prefix}%s`,
			),
		)
		log.GetLogger().SetOutput(os.Stderr)
	}

	files, err := doublestar.FilepathGlob(cmd.String("files"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		msg := "No files matched"
		if cmd.Bool("ci") {
			log.Warning(msg)
		} else {
			log.Fatal(msg)
		}
	}

	log.Debug("config:")
	for _, f := range cmd.Flags {
		flag := f.Names()
		log.Debugf(nil, "%20s: %v", flag[0], cmd.Value(flag[0]))
	}

	fatalErrorHandler := NewErrorHandler(cmd.Bool("continue-on-error"))

	defaults := cliConfig(cmd)
	renderer := &render.Renderer{
		Bin:      cmd.String("d2-bin"),
		Embedded: cmd.Bool("embedded"),
	}

	// Loop through files matched by glob pattern
	for _, file := range files {
		log.Infof(
			nil,
			"processing %s",
			file,
		)

		processFile(ctx, file, cmd, defaults, renderer, fatalErrorHandler)
	}

	return nil
}

func processFile(
	ctx context.Context,
	file string,
	cmd *cli.Command,
	defaults d2.Config,
	renderer markdown.Renderer,
	fatalErrorHandler *FatalErrorHandler,
) {
	source, err := os.ReadFile(file)
	if err != nil {
		fatalErrorHandler.Handle(err, "unable to read file %q", file)
		return
	}

	source = bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))

	meta, err := metadata.ExtractMeta(source, file)
	if err != nil {
		fatalErrorHandler.Handle(err, "unable to extract metadata from file %q", file)
		return
	}

	converter := &markdown.Converter{
		Renderer:     renderer,
		Defaults:     defaults.Merge(meta.D2),
		BaseDir:      filepath.Dir(file),
		DefaultTitle: meta.Title,
		DryRun:       cmd.Bool("dry-run"),
	}

	result, attachments, err := converter.Convert(ctx, source)
	if err != nil {
		fatalErrorHandler.Handle(err, "unable to convert file %q", file)
		return
	}

	if len(attachments) > 0 {
		log.Infof(nil, "converted %d diagrams in %s", len(attachments), file)
	}

	if cmd.Bool("dry-run") {
		return
	}

	switch {
	case cmd.Bool("write"):
		if bytes.Equal(source, result) {
			log.Debugf(nil, "%s is unchanged", file)
			return
		}
		if err := os.WriteFile(file, result, 0o644); err != nil {
			fatalErrorHandler.Handle(err, "unable to write file %q", file)
			return
		}
		log.Infof(nil, "updated %s", file)

	case cmd.String("output") != "" && cmd.String("output") != "-":
		dir := cmd.String("output")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalErrorHandler.Handle(err, "unable to create output directory %q", dir)
			return
		}
		target := filepath.Join(dir, filepath.Base(file))
		if err := os.WriteFile(target, result, 0o644); err != nil {
			fatalErrorHandler.Handle(err, "unable to write file %q", target)
			return
		}
		log.Infof(nil, "written %s", target)

	default:
		fmt.Println(string(result))
	}
}

// cliConfig collects rendering defaults from command-line flags. Only flags
// the user actually set become part of the configuration, so document and
// block level settings are never shadowed by flag defaults.
func cliConfig(cmd *cli.Command) d2.Config {
	var config d2.Config

	if cmd.IsSet("force-appendix") {
		config.ForceAppendix = go2.Pointer(cmd.Bool("force-appendix"))
	}
	if cmd.IsSet("layout") {
		if layout, ok := d2.ParseLayout(cmd.String("layout")); ok {
			config.Layout = go2.Pointer(layout)
		} else {
			log.Warningf(nil, "unknown layout engine %q", cmd.String("layout"))
		}
	}
	if cmd.IsSet("theme") {
		config.Theme = go2.Pointer(int64(cmd.Int("theme")))
	}
	if cmd.IsSet("dark-theme") {
		config.DarkTheme = go2.Pointer(int64(cmd.Int("dark-theme")))
	}
	if cmd.IsSet("pad") {
		config.Pad = go2.Pointer(int64(cmd.Int("pad")))
	}
	if cmd.IsSet("animate-interval") {
		config.AnimateInterval = go2.Pointer(int64(cmd.Int("animate-interval")))
	}
	if cmd.IsSet("timeout") {
		config.Timeout = go2.Pointer(int64(cmd.Int("timeout")))
	}
	if cmd.IsSet("sketch") {
		config.Sketch = go2.Pointer(cmd.Bool("sketch"))
	}
	if cmd.IsSet("center") {
		config.Center = go2.Pointer(cmd.Bool("center"))
	}
	if cmd.IsSet("scale") {
		config.Scale = go2.Pointer(cmd.Float("scale"))
	}
	if cmd.IsSet("target") {
		config.Target = go2.Pointer(cmd.String("target"))
	}
	if cmd.IsSet("format") {
		if format, ok := d2.ParseFormat(cmd.String("format")); ok {
			config.Format = go2.Pointer(format)
		} else {
			log.Warningf(nil, "unknown output format %q", cmd.String("format"))
		}
	}
	if cmd.IsSet("assets-dir") {
		config.Directory = go2.Pointer(cmd.String("assets-dir"))
	}
	if cmd.IsSet("only-convert-marked") {
		config.OnlyConvertMarked = go2.Pointer(cmd.Bool("only-convert-marked"))
	}

	return config
}

// CheckMutuallyExclusiveOutputFlags rejects flag combinations that ask for
// two output destinations at once.
func CheckMutuallyExclusiveOutputFlags(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("write") && cmd.String("output") != "" {
		return ctx, errors.New("--write and --output are mutually exclusive")
	}
	return ctx, nil
}

func ConfigFilePath() string {
	fp, err := os.UserConfigDir()
	if err != nil {
		log.Fatal(err)
	}
	return filepath.Join(fp, "d2md.toml")
}

func SetLogLevel(cmd *cli.Command) error {
	logLevel := cmd.String("log-level")
	switch strings.ToUpper(logLevel) {
	case lorg.LevelTrace.String():
		log.SetLevel(lorg.LevelTrace)
	case lorg.LevelDebug.String():
		log.SetLevel(lorg.LevelDebug)
	case lorg.LevelInfo.String():
		log.SetLevel(lorg.LevelInfo)
	case lorg.LevelWarning.String():
		log.SetLevel(lorg.LevelWarning)
	case lorg.LevelError.String():
		log.SetLevel(lorg.LevelError)
	case lorg.LevelFatal.String():
		log.SetLevel(lorg.LevelFatal)
	default:
		return fmt.Errorf("unknown log level: %s", logLevel)
	}

	return nil
}
