package palette

import (
	"fmt"
	"strconv"
)

// ParseHex reads a #RGB or #RRGGBB color into its channels.
func ParseHex(s string) (r, g, b int, err error) {
	if len(s) == 0 || s[0] != '#' {
		return 0, 0, 0, fmt.Errorf("invalid color %q, should be #RGB or #RRGGBB", s)
	}

	digits := s[1:]
	var width int
	switch len(digits) {
	case 3:
		width = 1
	case 6:
		width = 2
	default:
		return 0, 0, 0, fmt.Errorf("invalid color %q, should be #RGB or #RRGGBB", s)
	}

	var ch [3]int
	for i := range ch {
		v, err := strconv.ParseUint(digits[i*width:(i+1)*width], 16, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("could not read color %q: %w", s, err)
		}
		if width == 1 {
			v |= v << 4
		}
		if !inChannelRange(v) {
			return 0, 0, 0, fmt.Errorf("%w: %q channel %d is %d", ErrInvalidColourComponent, s, i, v)
		}
		ch[i] = int(v)
	}

	return ch[0], ch[1], ch[2], nil
}
