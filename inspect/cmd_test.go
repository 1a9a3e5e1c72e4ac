package inspect

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coltab/palette"
	"coltab/parallel"
)

func writePalette(t *testing.T, path string, tbl *palette.Table) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := tbl.WriteRIFF(f); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestShow(t *testing.T) {
	var out bytes.Buffer
	cmd := &ShowCmd{Palette: "bw", Out: &out}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := "  0  #000000    0   0   0\n" +
		"  1  #ffffff  255 255 255\n" +
		"2/2 colors\n"
	if out.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestShowFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.pal")
	tbl := palette.MustNew(4)
	if err := tbl.Add(0x12, 0x34, 0x56); err != nil {
		t.Fatal(err)
	}
	writePalette(t, path, tbl)

	var out bytes.Buffer
	cmd := &ShowCmd{Palette: path, Out: &out}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(out.String(), "#123456") {
		t.Errorf("expected #123456 in output, got:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "1/2 colors\n") {
		t.Errorf("expected 1/2 summary, got:\n%s", out.String())
	}
}

func TestShowDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.pal")
	tbl := palette.MustNew(4)
	for _, c := range [][3]int{{1, 2, 3}, {4, 5, 6}, {1, 2, 3}, {1, 2, 3}} {
		if err := tbl.Add(c[0], c[1], c[2]); err != nil {
			t.Fatal(err)
		}
	}
	writePalette(t, path, tbl)

	var out bytes.Buffer
	cmd := &ShowCmd{Palette: path, Out: &out}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := "  0  #010203    1   2   3\n" +
		"  1  #040506    4   5   6\n" +
		"  2  #010203    1   2   3  = 0\n" +
		"  3  #010203    1   2   3  = 0\n" +
		"4/4 colors\n"
	if out.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestShowUnknown(t *testing.T) {
	cmd := &ShowCmd{Palette: filepath.Join(t.TempDir(), "missing.pal"), Out: &bytes.Buffer{}}
	if err := cmd.Validate(nil); err == nil {
		t.Error("expected an error for a missing palette")
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"bw", "vga16", "xterm256"} {
		tbl, _ := palette.Named(name)
		writePalette(t, filepath.Join(dir, name+".PAL"), tbl)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a palette"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pal"), 0o755); err != nil {
		t.Fatal(err)
	}

	pool := parallel.Start(3)
	defer pool.Wait(true)

	cmd := &ScanCmd{Dir: dir}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if err := cmd.Run(pool.Worker(), pool.Waiter()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if cmd.Loaded != 3 || cmd.Failed != 0 {
		t.Errorf("expected 3 loaded and 0 failed, got %d and %d", cmd.Loaded, cmd.Failed)
	}
}

func TestScanBrokenFile(t *testing.T) {
	dir := t.TempDir()
	tbl, _ := palette.Named("gray4")
	writePalette(t, filepath.Join(dir, "good.pal"), tbl)
	if err := os.WriteFile(filepath.Join(dir, "bad.pal"), []byte("RIFF\x04\x00\x00\x00WAVE"), 0o644); err != nil {
		t.Fatal(err)
	}

	pool := parallel.Start(1)
	cmd := &ScanCmd{Dir: dir}
	if err := cmd.Validate(nil); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(pool.Worker(), pool.Waiter()); err == nil {
		t.Error("expected an error for a broken file")
	}
	if cmd.Loaded != 1 || cmd.Failed != 1 {
		t.Errorf("expected 1 loaded and 1 failed, got %d and %d", cmd.Loaded, cmd.Failed)
	}
}

func TestScanValidation(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.pal")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{file, filepath.Join(t.TempDir(), "missing")} {
		cmd := &ScanCmd{Dir: dir}
		if err := cmd.Validate(nil); err == nil {
			t.Errorf("%s: expected an error", dir)
		}
	}
}
