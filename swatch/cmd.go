package swatch

import (
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"coltab/fileop"
	"coltab/palette"

	"github.com/alecthomas/kong"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type CLICmd struct {
	Palette string `arg:"" help:"Palette name (${palettes}) or PAL file in RIFF format"`
	Output  string `help:"Destination image" short:"o" required:""`
	Cell    int    `help:"Cell size in pixels" default:"16"`
	Columns int    `help:"Cells per row" default:"16"`
	Format  string `help:"Output format, auto picks it from the destination extension" enum:"auto,gif,png,bmp,tiff" default:"auto"`
	Force   bool   `help:"Overwrite the destination if it exists" default:"false"`

	table *palette.Table
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	t, err := palette.Load(c.Palette)
	if err != nil {
		return err
	}
	c.table = t

	if c.Cell < 1 {
		return fmt.Errorf("invalid cell size: %d", c.Cell)
	}
	if c.Columns < 1 {
		return fmt.Errorf("invalid number of columns: %d", c.Columns)
	}

	if c.Format == "" || c.Format == "auto" {
		if c.Format, err = formatFor(c.Output); err != nil {
			return err
		}
	}
	if c.Format == "gif" && t.Count() > maxIndexed {
		return fmt.Errorf("GIF holds at most %d colors, palette has %d", maxIndexed, t.Count())
	}

	if c.Output, err = filepath.Abs(c.Output); err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Output, err)
	}

	return nil
}

func (c *CLICmd) Run() error {
	logger := slog.Default().With("palette", c.Palette)

	img, err := Render(c.table, c.Cell, c.Columns)
	if err != nil {
		return fmt.Errorf("could not render palette: %w", err)
	}

	logger.Info("rendered", "colors", c.table.Count(), "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	err = fileop.Save(c.Output, c.Force, func(w io.Writer) error {
		return encode(w, img, c.Format)
	})
	if err != nil {
		return fmt.Errorf("could not save swatch %q: %w", c.Output, err)
	}

	logger.Info("saved", "file", c.Output, "format", c.Format)
	return nil
}

func formatFor(name string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".gif":
		return "gif", nil
	case ".png":
		return "png", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("cannot guess output format from extension %q", ext)
	}
}

func encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
