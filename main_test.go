package main

import (
	"bytes"
	"strings"
	"testing"

	"coltab/palette"

	"github.com/alecthomas/kong"
)

func TestHelpListsPalettes(t *testing.T) {
	for _, args := range [][]string{{"swatch", "--help"}, {"new", "--help"}, {"inspect", "show", "--help"}} {
		var out bytes.Buffer
		k, err := kong.New(&cli{}, vars(), kong.Writers(&out, &out), kong.Exit(func(int) {}))
		if err != nil {
			t.Fatalf("failed to build the command line: %v", err)
		}
		_, _ = k.Parse(args)

		for _, name := range palette.Names() {
			if !strings.Contains(out.String(), name) {
				t.Errorf("%v: expected %q in help:\n%s", args, name, out.String())
			}
		}
	}
}
