package palette

import "fmt"

// Colour is a packed 24-bit RGB value laid out as 0xRRGGBB.
type Colour uint32

func Pack(r, g, b uint8) Colour {
	return Colour(r)<<16 | Colour(g)<<8 | Colour(b)
}

func (c Colour) R() uint8 { return uint8(c >> 16) }
func (c Colour) G() uint8 { return uint8(c >> 8) }
func (c Colour) B() uint8 { return uint8(c) }

// RGBA implements color.Color. Table colors are always opaque.
func (c Colour) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R())
	r |= r << 8
	g = uint32(c.G())
	g |= g << 8
	b = uint32(c.B())
	b |= b << 8
	return r, g, b, 0xffff
}

func (c Colour) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}
