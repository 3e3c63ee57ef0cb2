// Package raster draws render commands into an in-memory RGBA image.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/vector"

	"github.com/Faultbox/meshkit/pkg/math"
)

// Canvas is an anti-aliased render.Surface backed by an *image.RGBA.
type Canvas struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

// New creates a transparent canvas of the given pixel size.
func New(width, height int) *Canvas {
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: vector.NewRasterizer(width, height),
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear fills the whole canvas with bg.
func (c *Canvas) Clear(bg color.RGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// FillTriangle fills the triangle abc.
func (c *Canvas) FillTriangle(a, b, p math.Vec2, fill color.RGBA) {
	c.fillPolygon([]math.Vec2{a, b, p}, fill)
}

// StrokeTriangle outlines the triangle abc.
func (c *Canvas) StrokeTriangle(a, b, p math.Vec2, stroke color.RGBA, width float32) {
	c.StrokeLine(a, b, stroke, width)
	c.StrokeLine(b, p, stroke, width)
	c.StrokeLine(p, a, stroke, width)
}

// StrokeLine draws a segment as a quad of the given width.
func (c *Canvas) StrokeLine(a, b math.Vec2, stroke color.RGBA, width float32) {
	dir := b.Sub(a).Normalize()
	if dir == (math.Vec2{}) || width <= 0 {
		return
	}
	off := dir.Perp().Scale(width / 2)
	c.fillPolygon([]math.Vec2{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)}, stroke)
}

func (c *Canvas) fillPolygon(pts []math.Vec2, col color.RGBA) {
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
	c.ras.DrawOp = draw.Over
	c.ras.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.ras.LineTo(p.X, p.Y)
	}
	c.ras.ClosePath()
	c.ras.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := c.WritePNG(f); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
