package main

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tools.zach/dev/tilegen/internal/paths"
)

// ///////////////////////////////////////////////
// resolveVersion Tests
// ///////////////////////////////////////////////

func TestResolveVersionWithLdflags(t *testing.T) {
	original := version
	defer func() { version = original }()

	version = "1.2.3"
	if got := resolveVersion(); got != "1.2.3" {
		t.Errorf("resolveVersion() = %q, want %q", got, "1.2.3")
	}
}

func TestResolveVersionDev(t *testing.T) {
	original := version
	defer func() { version = original }()

	version = "dev"
	if got := resolveVersion(); !strings.HasPrefix(got, "dev") {
		t.Errorf("resolveVersion() = %q, expected to start with 'dev'", got)
	}
}

// ///////////////////////////////////////////////
// run Tests
// ///////////////////////////////////////////////

// inTempDir runs the test from an empty working directory with no config.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(paths.ConfigEnv, "")
	return dir
}

func TestRunUsage(t *testing.T) {
	inTempDir(t)
	for _, args := range [][]string{nil, {"fff", "000"}} {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != 1 {
			t.Errorf("run(%q) = %d, want 1", args, code)
		}
		if got := stdout.String(); got != "Usage: tilegen <hex_color>\n" {
			t.Errorf("stdout = %q", got)
		}
	}
}

func TestRunWritesTile(t *testing.T) {
	dir := inTempDir(t)
	var stdout, stderr bytes.Buffer

	if code := run([]string{"#f00"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run = %d, stdout %q, stderr %q", code, stdout.String(), stderr.String())
	}

	want := filepath.Join("example", "tiles", "tile_f00.png")
	if got := stdout.String(); got != "Image saved to "+want+"\n" {
		t.Errorf("stdout = %q", got)
	}

	f, err := os.Open(filepath.Join(dir, want))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Errorf("bounds = %v, want 512x512", b)
	}
	got := color.NRGBAModel.Convert(img.At(10, 10)).(color.NRGBA)
	if want := (color.NRGBA{R: 255, A: 255}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestRunInvalidColor(t *testing.T) {
	dir := inTempDir(t)
	for _, in := range []string{"#12", "gggggg", "", "#"} {
		var stdout, stderr bytes.Buffer
		if code := run([]string{in}, &stdout, &stderr); code != 1 {
			t.Errorf("run(%q) = %d, want 1", in, code)
		}
		if !strings.HasPrefix(stdout.String(), "Error: invalid hex color format") {
			t.Errorf("run(%q) stdout = %q", in, stdout.String())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "example")); !os.IsNotExist(err) {
		t.Error("output directory should not be created for invalid input")
	}
}

func TestRunUsesConfig(t *testing.T) {
	dir := inTempDir(t)
	cfgPath := filepath.Join(dir, "conf", "tilegen.toml")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "[image]\nsize = 8\n\n[output]\ndir = \"out\"\nfilename = \"{hex}_{size}.png\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(paths.ConfigEnv, cfgPath)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"1a2b3c"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run = %d, stdout %q", code, stdout.String())
	}
	want := filepath.Join(dir, "conf", "out", "1a2b3c_8.png")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected tile at %s: %v", want, err)
	}
}

func TestRunBadConfig(t *testing.T) {
	dir := inTempDir(t)
	if err := os.WriteFile(filepath.Join(dir, paths.ConfigFile), []byte("[image]\nsize = -1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"fff"}, &stdout, &stderr); code != 1 {
		t.Errorf("run = %d, want 1", code)
	}
	if !strings.HasPrefix(stdout.String(), "Error: load config") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunIOFailure(t *testing.T) {
	dir := inTempDir(t)
	// A file named "example" blocks creation of example/tiles.
	if err := os.WriteFile(filepath.Join(dir, "example"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"fff"}, &stdout, &stderr); code != 1 {
		t.Errorf("run = %d, want 1", code)
	}
	if !strings.HasPrefix(stdout.String(), "Error: mkdir ") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "[ERROR] write failed") {
		t.Errorf("stderr = %q, want logged write failure", stderr.String())
	}
}

func TestRunPaintsSectors(t *testing.T) {
	dir := inTempDir(t)
	content := `
[image]
size = 4

[[sector]]
origin = [2, 0]
size = [5, 2]
color = "#00f"
`
	if err := os.WriteFile(filepath.Join(dir, paths.ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"fff"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run = %d, stdout %q", code, stdout.String())
	}

	f, err := os.Open(filepath.Join(dir, "example", "tiles", "tile_fff.png"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, white},
		{2, 0, blue},
		{3, 1, blue}, // sector runs past the right edge and is clipped
		{3, 2, white},
	}
	for _, tt := range tests {
		got := color.NRGBAModel.Convert(img.At(tt.x, tt.y)).(color.NRGBA)
		if got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRunRejectsBadSectorColor(t *testing.T) {
	dir := inTempDir(t)
	content := "[[sector]]\norigin = [0, 0]\nsize = [1, 1]\ncolor = \"#ff0000ff\"\n"
	if err := os.WriteFile(filepath.Join(dir, paths.ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"fff"}, &stdout, &stderr); code != 1 {
		t.Errorf("run = %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "sector[0]: color: invalid hex color format") {
		t.Errorf("stdout = %q", stdout.String())
	}
}
