package main

import (
	"log/slog"
	"strings"

	"coltab/create"
	"coltab/inspect"
	"coltab/palette"
	"coltab/parallel"
	"coltab/swatch"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers int  `help:"Number of parallel workers, 0 uses one per CPU" default:"0"`
	Verbose bool `help:"Log debug messages" short:"v" default:"false"`

	New     create.CLICmd  `cmd:"" help:"Build a fixed size color table and save it as a PAL file"`
	Inspect inspect.CLICmd `cmd:"" help:"Look at color tables"`
	Swatch  swatch.CLICmd  `cmd:"" help:"Render a color table as an image of color cells"`
}

// vars fills the help placeholders shared by the subcommands.
func vars() kong.Vars {
	return kong.Vars{
		"palettes": strings.Join(palette.Names(), ", "),
	}
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("coltab"),
		kong.Description("Fixed capacity indexed color tables"),
		kong.UsageOnError(),
		vars(),
	)

	if c.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	pool := parallel.Start(c.Workers)
	err := kctx.Run(pool.Worker(), pool.Waiter())
	pool.Wait(true)
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
	}
	kctx.FatalIfErrorf(err)
}
