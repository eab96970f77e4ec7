// Package canvas implements the freehand drawing surface signatures are
// captured on.
package canvas

import (
	"bytes"
	"image"

	"github.com/fogleman/gg"
)

const (
	DefaultWidth  = 500
	DefaultHeight = 200
	// PixelRatio is the fixed upscale applied when rasterizing.
	PixelRatio = 2
	// StrokeWidth is expressed in logical units, before PixelRatio.
	StrokeWidth = 2.0
)

// Point is a position in logical (unscaled) surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type strokeState int

const (
	stateIdle strokeState = iota
	stateDrawing
)

// Surface is an opaque white raster that strokes are drawn onto.
//
// Stroke state is an explicit machine: Idle -> Drawing(last) on BeginStroke,
// Drawing(last) -> Drawing(p) on ExtendStroke, back to Idle on EndStroke or
// Clear. A Surface is not safe for concurrent use.
type Surface struct {
	dc     *gg.Context
	width  int
	height int
	state  strokeState
	last   Point
}

// NewSurface creates a surface of width×height logical units.
func NewSurface(width, height int) *Surface {
	s := &Surface{
		dc:     gg.NewContext(width*PixelRatio, height*PixelRatio),
		width:  width,
		height: height,
	}
	s.Clear()
	return s
}

func NewDefaultSurface() *Surface {
	return NewSurface(DefaultWidth, DefaultHeight)
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Drawing reports whether a stroke is in progress.
func (s *Surface) Drawing() bool {
	return s.state == stateDrawing
}

// BeginStroke starts a stroke at p. It is ignored while another stroke is in
// progress, so repeated pointer-down events never overlap.
func (s *Surface) BeginStroke(p Point) {
	if s.state == stateDrawing {
		return
	}
	s.state = stateDrawing
	s.last = p
}

// ExtendStroke draws a segment from the last point to p. Ignored when idle.
// A zero-length segment paints a round dot the size of the pen.
func (s *Surface) ExtendStroke(p Point) {
	if s.state != stateDrawing {
		return
	}
	if p == s.last {
		s.dc.DrawCircle(p.X*PixelRatio, p.Y*PixelRatio, StrokeWidth*PixelRatio/2)
		s.dc.Fill()
		return
	}
	s.dc.DrawLine(
		s.last.X*PixelRatio, s.last.Y*PixelRatio,
		p.X*PixelRatio, p.Y*PixelRatio,
	)
	s.dc.Stroke()
	s.last = p
}

// EndStroke terminates the current stroke. Idempotent.
func (s *Surface) EndStroke() {
	s.state = stateIdle
}

// Clear repaints the white background and drops any stroke in progress.
func (s *Surface) Clear() {
	s.dc.SetRGB(1, 1, 1)
	s.dc.Clear()
	s.dc.SetRGB(0, 0, 0)
	s.dc.SetLineWidth(StrokeWidth * PixelRatio)
	s.dc.SetLineCapRound()
	s.dc.SetLineJoinRound()
	s.state = stateIdle
}

// Image returns the rasterized surface at full pixel density.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// HasInk reports whether any pixel differs from pure white.
func (s *Surface) HasInk() bool {
	return ImageHasInk(s.dc.Image())
}

// PNG encodes the surface.
func (s *Surface) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL encodes the surface as a data:image/png;base64 URL.
func (s *Surface) DataURL() (string, error) {
	b, err := s.PNG()
	if err != nil {
		return "", err
	}
	return EncodeDataURL(b), nil
}

// ImageHasInk reports whether any pixel of img differs from opaque white in
// any color channel. Fully transparent pixels count as blank.
func ImageHasInk(img image.Image) bool {
	if rgba, ok := img.(*image.RGBA); ok {
		b := rgba.Rect
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := rgba.Pix[(y-b.Min.Y)*rgba.Stride:]
			for x := 0; x < b.Dx(); x++ {
				px := row[x*4 : x*4+4]
				if px[3] == 0 {
					continue
				}
				if px[0] != 0xff || px[1] != 0xff || px[2] != 0xff {
					return true
				}
			}
		}
		return false
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if r != 0xffff || g != 0xffff || bl != 0xffff {
				return true
			}
		}
	}
	return false
}
