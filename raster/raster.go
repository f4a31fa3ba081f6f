/*
Package raster prepares arbitrary images for conversion to a SAM Coupé
screen: loading, resizing and cropping to fit, optional filtering and
dithering, and quantizing down to a small number of colors.
*/
package raster

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Decode reads an image in any registered format from r, respecting any
// EXIF orientation
func Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

// Fit resizes m so that it covers width by height pixels, keeping its aspect
// ratio, then crops the center of the result to exactly that size.
func Fit(m image.Image, width, height int) *image.NRGBA {
	b := m.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return imaging.Clone(m)
	}

	scale := math.Max(float64(width)/float64(b.Dx()), float64(height)/float64(b.Dy()))
	w := uint(math.Ceil(float64(b.Dx()) * scale))
	h := uint(math.Ceil(float64(b.Dy()) * scale))

	return imaging.CropCenter(resize.Resize(w, h, m, resize.Lanczos3), width, height)
}

// Blur applies a Gaussian blur to m, which evens out noise and fine
// gradients that would otherwise use up colors. A sigma of zero or less
// returns m unchanged.
func Blur(m image.Image, sigma float32) image.Image {
	if sigma <= 0 {
		return m
	}
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}

// Dither reduces m to the colors of p using Floyd-Steinberg error diffusion
func Dither(m image.Image, p color.Palette) *image.Paletted {
	b := m.Bounds()
	r := image.Rect(0, 0, b.Dx(), b.Dy())
	dst := image.NewPaletted(r, p)
	draw.FloydSteinberg.Draw(dst, r, m, b.Min)
	return dst
}

// CountColors returns the number of distinct colors in m, counting no
// further than max.
func CountColors(m image.Image, max int) int {
	seen := make(map[color.RGBA]struct{})
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, _ := m.At(x, y).RGBA()
			seen[color.RGBA{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8), 0xff}] = struct{}{}
			if len(seen) >= max {
				return max
			}
		}
	}
	return len(seen)
}

// MedianCut quantizes images using median cut, it implements
// interrupt.Quantizer.
type MedianCut struct{}

// Quantize returns m reduced to no more than colors colors, with the top
// left corner at (0, 0).
func (MedianCut) Quantize(m image.Image, colors int) (*image.Paletted, error) {
	q := quantize.MedianCutQuantizer{}

	b := m.Bounds()
	r := image.Rect(0, 0, b.Dx(), b.Dy())
	pm := image.NewPaletted(r, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, r, m, b.Min, draw.Src)

	return pm, nil
}
