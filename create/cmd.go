package create

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"coltab/fileop"
	"coltab/palette"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Size    int      `help:"Table capacity, a power of 2 greater than 1" required:""`
	From    string   `help:"Palette name (${palettes}) or PAL file whose colors are added first"`
	Output  string   `help:"Destination PAL file" short:"o" required:""`
	Force   bool     `help:"Overwrite the destination if it exists" default:"false"`
	Colours []string `arg:"" optional:"" help:"Colors to add, as #RGB or #RRGGBB"`

	table *palette.Table
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	t, err := palette.New(c.Size)
	if err != nil {
		return err
	}

	if c.From != "" {
		src, err := palette.Load(c.From)
		if err != nil {
			return err
		}
		if n := t.From(src.Palette()); int(n) != src.Count() {
			return fmt.Errorf("%w: %q has %d colors, table holds %d",
				palette.ErrCapacityExceeded, c.From, src.Count(), t.Cap())
		}
	}

	for _, s := range c.Colours {
		r, g, b, err := palette.ParseHex(s)
		if err != nil {
			return err
		}
		if i, ok := t.IndexOf(palette.Pack(uint8(r), uint8(g), uint8(b))); ok {
			slog.Warn("duplicate color", "color", s, "index", i)
		}
		if err := t.Add(r, g, b); err != nil {
			return fmt.Errorf("could not add color %s: %w", s, err)
		}
	}
	c.table = t

	if c.Output, err = filepath.Abs(c.Output); err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Output, err)
	}

	return nil
}

func (c *CLICmd) Run() error {
	err := fileop.Save(c.Output, c.Force, func(w io.Writer) error {
		_, err := c.table.WriteRIFF(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("could not save palette %q: %w", c.Output, err)
	}

	slog.Info("saved", "file", c.Output, "colors", c.table.Count(), "capacity", c.table.Cap())
	return nil
}
