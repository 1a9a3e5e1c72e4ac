package palette

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

var ErrUnknownPalette = errors.New("palette: unknown palette")

// VGA text mode colors, also the usual 16 ANSI terminal colors.
var vgaColours = [16][3]uint8{
	{0x00, 0x00, 0x00}, // Black
	{0xaa, 0x00, 0x00}, // Red
	{0x00, 0xaa, 0x00}, // Green
	{0xaa, 0x55, 0x00}, // Brown
	{0x00, 0x00, 0xaa}, // Blue
	{0xaa, 0x00, 0xaa}, // Magenta
	{0x00, 0xaa, 0xaa}, // Cyan
	{0xaa, 0xaa, 0xaa}, // Light gray

	{0x55, 0x55, 0x55}, // Dark gray
	{0xff, 0x55, 0x55}, // Bright red
	{0x55, 0xff, 0x55}, // Bright green
	{0xff, 0xff, 0x55}, // Yellow
	{0x55, 0x55, 0xff}, // Bright blue
	{0xff, 0x55, 0xff}, // Bright magenta
	{0x55, 0xff, 0xff}, // Bright cyan
	{0xff, 0xff, 0xff}, // White
}

var named = map[string]func(t *Table){
	"bw": func(t *Table) {
		addAll(t, [][3]uint8{{0, 0, 0}, {0xff, 0xff, 0xff}})
	},
	"gray4": func(t *Table) {
		grays(t, 4)
	},
	"gray16": func(t *Table) {
		grays(t, 16)
	},
	"vga16": func(t *Table) {
		addAll(t, vgaColours[:])
	},
	"xterm256": func(t *Table) {
		addAll(t, vgaColours[:])

		// 6x6x6 cube
		levels := [6]uint8{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}
		for _, r := range levels {
			for _, g := range levels {
				for _, b := range levels {
					addAll(t, [][3]uint8{{r, g, b}})
				}
			}
		}

		// gray ramp, 0x08 to 0xee
		for i := range 24 {
			v := uint8(0x08 + i*0x0a)
			addAll(t, [][3]uint8{{v, v, v}})
		}
	},
}

var namedSizes = map[string]int{
	"bw":       2,
	"gray4":    4,
	"gray16":   16,
	"vga16":    16,
	"xterm256": 256,
}

// Named returns a new, full copy of one of the built-in tables.
func Named(name string) (*Table, error) {
	fill, ok := named[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}

	t := MustNew(namedSizes[strings.ToLower(name)])
	fill(t)
	return t, nil
}

func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load returns the built-in table called name, or reads name as a PAL file.
func Load(name string) (*Table, error) {
	if t, err := Named(name); err == nil {
		return t, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("palette %q is neither built in (%s) nor a readable file: %w",
			name, strings.Join(Names(), ", "), err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}
	return t, nil
}

func grays(t *Table, n int) {
	step := 0xff / (n - 1)
	for i := range n {
		v := uint8(i * step)
		addAll(t, [][3]uint8{{v, v, v}})
	}
}

// addAll is only used on tables sized for their contents.
func addAll(t *Table, cs [][3]uint8) {
	for _, c := range cs {
		if err := t.Add(int(c[0]), int(c[1]), int(c[2])); err != nil {
			panic(err)
		}
	}
}
