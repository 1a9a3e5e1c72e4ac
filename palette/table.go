package palette

import (
	"errors"
	"fmt"
	"image/color"

	"golang.org/x/exp/constraints"
)

var (
	ErrInvalidConfiguration   = errors.New("palette: invalid configuration")
	ErrCapacityExceeded       = errors.New("palette: capacity exceeded")
	ErrInvalidColourComponent = errors.New("palette: invalid color component")
	ErrIndexOutOfRange        = errors.New("palette: index out of range")
)

// Table is a fixed-capacity, append-only list of 24-bit colors. The capacity
// is a power of two greater than 1. Entries keep the index they were added at.
//
// A Table does no locking of its own: Add must not run concurrently with any
// other method.
type Table struct {
	colours  []Colour
	capacity int
}

// New returns an empty table holding at most size colors.
func New(size int) (*Table, error) {
	if !validCapacity(size) {
		return nil, fmt.Errorf("%w: size %d is not a power of 2 greater than 1", ErrInvalidConfiguration, size)
	}

	return &Table{
		colours:  make([]Colour, 0, min(size, 256)),
		capacity: size,
	}, nil
}

func MustNew(size int) *Table {
	t, err := New(size)
	if err != nil {
		panic(err)
	}
	return t
}

// Add packs the channels into a single color and appends it. A full table is
// reported before any channel is looked at.
func (t *Table) Add(red, green, blue int) error {
	if len(t.colours) >= t.capacity {
		return fmt.Errorf("%w: table holds %d colors", ErrCapacityExceeded, t.capacity)
	}
	if !inChannelRange(red) || !inChannelRange(green) || !inChannelRange(blue) {
		return fmt.Errorf("%w: (%d, %d, %d) outside 0-255", ErrInvalidColourComponent, red, green, blue)
	}

	t.colours = append(t.colours, Colour(red<<16|green<<8|blue))
	return nil
}

// AddColour appends c converted to 8-bit RGB. Alpha is dropped.
func (t *Table) AddColour(c color.Color) error {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return t.Add(int(rgba.R), int(rgba.G), int(rgba.B))
}

func (t *Table) Colour(index int) (Colour, error) {
	if index < 0 || index >= len(t.colours) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(t.colours))
	}
	return t.colours[index], nil
}

func (t *Table) Count() int {
	return len(t.colours)
}

func (t *Table) Cap() int {
	return t.capacity
}

func (t *Table) Full() bool {
	return len(t.colours) == t.capacity
}

// IndexOf returns the index of the first entry equal to c.
func (t *Table) IndexOf(c Colour) (int, bool) {
	for i, v := range t.colours {
		if v == c {
			return i, true
		}
	}
	return -1, false
}

func (t *Table) Colours() []Colour {
	return append([]Colour(nil), t.colours...)
}

// From appends every color of pal until the table fills up and returns the
// number of colors taken.
func (t *Table) From(pal color.Palette) int64 {
	var n int64
	for _, c := range pal {
		if err := t.AddColour(c); err != nil {
			break
		}
		n++
	}
	return n
}

// Palette returns the stored colors as a standard library palette.
func (t *Table) Palette() color.Palette {
	pal := make(color.Palette, len(t.colours))
	for i, c := range t.colours {
		pal[i] = color.RGBAModel.Convert(c)
	}
	return pal
}

// NextPowerOfTwo returns the smallest valid table capacity that can hold n
// colors.
func NextPowerOfTwo(n int) int {
	size := 2
	for size < n {
		size <<= 1
	}
	return size
}

func validCapacity(size int) bool {
	return size > 1 && size&(size-1) == 0
}

func inChannelRange[T constraints.Integer](v T) bool {
	return v >= 0 && uint64(v) <= 0xff
}
