package inspect

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"coltab/palette"
	"coltab/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Show ShowCmd `cmd:"" help:"Print the colors of a palette, marking repeats with the index of their first entry"`
	Scan ScanCmd `cmd:"" help:"Load every PAL file in a folder and report its size"`
}

type ShowCmd struct {
	Palette string    `arg:"" help:"Palette name (${palettes}) or PAL file in RIFF format"`
	Out     io.Writer `kong:"-"`

	table *palette.Table
}

func (c *ShowCmd) Validate(kctx *kong.Context) error {
	t, err := palette.Load(c.Palette)
	if err != nil {
		return err
	}
	c.table = t

	if c.Out == nil {
		c.Out = kctx.Stdout
	}
	return nil
}

func (c *ShowCmd) Run() error {
	w := c.Out
	if w == nil {
		w = os.Stdout
	}

	for i, col := range c.table.Colours() {
		dup := ""
		if first, _ := c.table.IndexOf(col); first < i {
			dup = fmt.Sprintf("  = %d", first)
		}
		if _, err := fmt.Fprintf(w, "%3d  %s  %3d %3d %3d%s\n", i, col, col.R(), col.G(), col.B(), dup); err != nil {
			return fmt.Errorf("could not print color %d: %w", i, err)
		}
	}
	if _, err := fmt.Fprintf(w, "%d/%d colors\n", c.table.Count(), c.table.Cap()); err != nil {
		return fmt.Errorf("could not print summary: %w", err)
	}
	return nil
}

type ScanCmd struct {
	Dir string `help:"Folder to scan for .pal files" default:"."`

	Loaded uint64 `kong:"-"`
	Failed uint64 `kong:"-"`
}

func (c *ScanCmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Dir)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Dir, err)
	}
	c.Dir = scanDir

	return nil
}

func (c *ScanCmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	files, err := os.ReadDir(c.Dir)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Dir, err)
	}

	var loadedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), ".pal") {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Dir, fileName)
				logger := slog.Default().With("file", filePath)

				t, err := loadFile(filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not load palette", "error", err)
					return
				}

				logger.Info("loaded", "colors", t.Count(), "capacity", t.Cap(), "full", t.Full())
				loadedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(false)

	c.Loaded = loadedCount.Load()
	c.Failed = errCount.Load()
	slog.Info("stats", "loaded", c.Loaded, "errors", c.Failed,
		"total", c.Loaded+c.Failed)

	if c.Failed > 0 {
		return fmt.Errorf("error loading %d files", c.Failed)
	}
	return nil
}

func loadFile(name string) (*palette.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette file %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	return palette.ReadTable(f)
}
