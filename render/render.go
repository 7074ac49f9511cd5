package render

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"

	"github.com/ueaner/d2md/d2"
)

var renderTimeout = 120 * time.Second

// Renderer turns prepared diagram code into image bytes. It prefers the d2
// executable, which supports every output format, and falls back to the
// embedded engine when the binary is not installed.
type Renderer struct {
	// Bin is the d2 executable to run; empty means "d2" from PATH.
	Bin string

	// Embedded skips the executable lookup entirely.
	Embedded bool
}

func (renderer *Renderer) Render(ctx context.Context, code string, config d2.Config) ([]byte, error) {
	timeout := renderTimeout
	if config.Timeout != nil && *config.Timeout > 0 {
		timeout = time.Duration(*config.Timeout) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if renderer.Embedded {
		return renderEmbedded(ctx, code, config)
	}

	bin := renderer.Bin
	if bin == "" {
		bin = "d2"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		log.Debugf(nil, "d2 executable %q not found, using the embedded engine", bin)
		return renderEmbedded(ctx, code, config)
	}

	return renderExec(ctx, path, code, config)
}

// renderExec feeds code to the d2 executable over stdin and collects the
// rendered image from a temporary output file.
func renderExec(ctx context.Context, bin string, code string, config d2.Config) ([]byte, error) {
	out, err := os.CreateTemp("", "d2md-*"+OutputFormat(config).Ext())
	if err != nil {
		return nil, karma.Format(err, "unable to create temporary output file")
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	args := append(Args(config), "-", outPath)

	log.Tracef(nil, "exec: %s %s", bin, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = strings.NewReader(code)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, karma.
			Describe("args", strings.Join(args, " ")).
			Describe("stderr", strings.TrimSpace(stderr.String())).
			Format(err, "d2 execution failed")
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, karma.Format(err, "unable to read rendered diagram %q", outPath)
	}

	return data, nil
}

// OutputFormat returns the effective output format, defaulting to SVG.
func OutputFormat(config d2.Config) d2.Format {
	if config.Format != nil {
		return *config.Format
	}
	return d2.FormatSVG
}

// Args projects the configuration onto d2 command-line flags. The order is
// fixed so equal configurations always produce equal argument lists, which
// keeps content-addressed asset names stable.
func Args(config d2.Config) []string {
	var args []string
	if config.ForceAppendix != nil && *config.ForceAppendix {
		args = append(args, "--force-appendix")
	}
	if config.Layout != nil {
		args = append(args, "--layout="+string(*config.Layout))
	}
	if config.Theme != nil {
		args = append(args, "--theme="+formatInt(*config.Theme))
	}
	if config.DarkTheme != nil {
		args = append(args, "--dark-theme="+formatInt(*config.DarkTheme))
	}
	if config.Pad != nil {
		args = append(args, "--pad="+formatInt(*config.Pad))
	}
	if config.AnimateInterval != nil {
		args = append(args, "--animate-interval="+formatInt(*config.AnimateInterval))
	}
	if config.Timeout != nil {
		args = append(args, "--timeout="+formatInt(*config.Timeout))
	}
	if config.Sketch != nil && *config.Sketch {
		args = append(args, "--sketch")
	}
	if config.Center != nil && *config.Center {
		args = append(args, "--center")
	}
	if config.Scale != nil {
		args = append(args, "--scale="+strconv.FormatFloat(*config.Scale, 'f', -1, 64))
	}
	if config.Target != nil {
		args = append(args, "--target="+*config.Target)
	}
	if OutputFormat(config) == d2.FormatSVG {
		args = append(args, "--no-xml-tag")
	}
	return args
}

// formatInt renders an integer flag value, keeping the parse failure marker
// readable as NaN instead of its numeric representation.
func formatInt(value int64) string {
	if value == d2.NotANumber {
		return "NaN"
	}
	return strconv.FormatInt(value, 10)
}
