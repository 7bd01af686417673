// Package tile renders solid-color square tiles with optional rectangular
// sector overlays, encodes them as PNG and saves them to an output
// directory.
package tile

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// MaxSize bounds the tile edge so a typo in the config cannot allocate
// gigabytes.
const MaxSize = 8192

// Sector is a rectangle painted over the tile background.
type Sector struct {
	Rect  image.Rectangle
	Color color.Color
}

// Render returns a size x size image filled with c, then paints sectors on
// top in order. Sectors are clipped to the tile; one lying entirely outside
// is skipped.
func Render(c color.Color, size int, sectors ...Sector) (*image.NRGBA, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("invalid tile size %d: must be between 1 and %d", size, MaxSize)
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)

	for _, s := range sectors {
		r := s.Rect.Intersect(img.Bounds())
		if r.Empty() {
			continue
		}
		draw.Copy(img, r.Min, image.NewUniform(s.Color), r, draw.Src, nil)
	}
	return img, nil
}

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
