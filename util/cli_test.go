package util

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"
	"oss.terrastruct.com/util-go/go2"

	"github.com/ueaner/d2md/d2"
)

func runWithArgs(args []string) error {
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "write"},
			&cli.StringFlag{Name: "output"},
		},
		Before: CheckMutuallyExclusiveOutputFlags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return nil
		},
	}
	return cmd.Run(context.Background(), args)
}

func TestCheckMutuallyExclusiveOutputFlags(t *testing.T) {
	t.Run("neither flag set", func(t *testing.T) {
		err := runWithArgs([]string{"cmd"})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("only write set", func(t *testing.T) {
		err := runWithArgs([]string{"cmd", "--write"})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("only output set", func(t *testing.T) {
		err := runWithArgs([]string{"cmd", "--output", "dist"})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("both flags set", func(t *testing.T) {
		err := runWithArgs([]string{"cmd", "--write", "--output", "dist"})
		if err == nil {
			t.Errorf("expected error, got nil")
		}
	})
}

func configFlagSet() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "force-appendix"},
		&cli.StringFlag{Name: "layout"},
		&cli.IntFlag{Name: "theme"},
		&cli.IntFlag{Name: "dark-theme"},
		&cli.IntFlag{Name: "pad"},
		&cli.IntFlag{Name: "animate-interval"},
		&cli.IntFlag{Name: "timeout"},
		&cli.BoolFlag{Name: "sketch"},
		&cli.BoolFlag{Name: "center"},
		&cli.FloatFlag{Name: "scale"},
		&cli.StringFlag{Name: "target"},
		&cli.StringFlag{Name: "format"},
		&cli.StringFlag{Name: "assets-dir"},
		&cli.BoolFlag{Name: "only-convert-marked"},
	}
}

func collectConfig(t *testing.T, args []string) d2.Config {
	t.Helper()

	var config d2.Config
	cmd := &cli.Command{
		Flags: configFlagSet(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			config = cliConfig(cmd)
			return nil
		},
	}

	err := cmd.Run(context.Background(), args)
	assert.NoError(t, err)

	return config
}

func TestCliConfig(t *testing.T) {
	config := collectConfig(t, []string{
		"d2md",
		"--layout", "elk",
		"--theme", "105",
		"--pad", "20",
		"--sketch",
		"--scale", "0.7",
		"--format", "png",
		"--target", "front",
		"--assets-dir", "img",
	})

	assert.Equal(t, d2.Config{
		Layout:    go2.Pointer(d2.LayoutELK),
		Theme:     go2.Pointer(int64(105)),
		Pad:       go2.Pointer(int64(20)),
		Sketch:    go2.Pointer(true),
		Scale:     go2.Pointer(0.7),
		Format:    go2.Pointer(d2.FormatPNG),
		Target:    go2.Pointer("front"),
		Directory: go2.Pointer("img"),
	}, config)
}

func TestCliConfigLeavesUnsetFlagsNil(t *testing.T) {
	config := collectConfig(t, []string{"d2md"})
	assert.Equal(t, d2.Config{}, config)
}

func TestCliConfigExplicitFalseSurvives(t *testing.T) {
	config := collectConfig(t, []string{"d2md", "--sketch=false", "--center=false"})
	assert.Equal(t, d2.Config{
		Sketch: go2.Pointer(false),
		Center: go2.Pointer(false),
	}, config)
}

func TestCliConfigUnknownEnums(t *testing.T) {
	config := collectConfig(t, []string{"d2md", "--layout", "bogus", "--format", "jpeg"})
	assert.Equal(t, d2.Config{}, config)
}
