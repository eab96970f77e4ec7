package canvas

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func drawLine(s *Surface) {
	s.BeginStroke(Point{X: 10, Y: 10})
	s.ExtendStroke(Point{X: 120, Y: 80})
	s.ExtendStroke(Point{X: 200, Y: 40})
	s.EndStroke()
}

func TestSurface_StartsBlank(t *testing.T) {
	s := NewDefaultSurface()
	if s.HasInk() {
		t.Fatalf("new surface must be blank")
	}
	b := s.Image().Bounds()
	if b.Dx() != DefaultWidth*PixelRatio || b.Dy() != DefaultHeight*PixelRatio {
		t.Fatalf("expected %dx%d pixels, got %v", DefaultWidth*PixelRatio, DefaultHeight*PixelRatio, b)
	}
	if s.Width() != DefaultWidth || s.Height() != DefaultHeight {
		t.Fatalf("unexpected logical size %dx%d", s.Width(), s.Height())
	}
}

func TestSurface_StrokeLeavesInk(t *testing.T) {
	s := NewDefaultSurface()
	drawLine(s)
	if !s.HasInk() {
		t.Fatalf("expected ink after stroke")
	}
	if s.Drawing() {
		t.Fatalf("expected idle after EndStroke")
	}

	// Midpoint of the first segment, scaled to pixels.
	r, g, b, _ := s.Image().At(65*PixelRatio, 45*PixelRatio).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		t.Fatalf("expected stroke pixel at segment midpoint")
	}
}

func TestSurface_TapLeavesInk(t *testing.T) {
	s := NewDefaultSurface()
	s.BeginStroke(Point{X: 100, Y: 100})
	s.ExtendStroke(Point{X: 100, Y: 100})
	s.EndStroke()
	if !s.HasInk() {
		t.Fatalf("expected a dot after a tap")
	}

	r, g, b, _ := s.Image().At(100*PixelRatio, 100*PixelRatio).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		t.Fatalf("expected ink at the tap position")
	}
	r, g, b, _ = s.Image().At(110*PixelRatio, 100*PixelRatio).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Fatalf("dot must stay within the pen width")
	}
}

func TestSurface_ExtendWhileIdleIsIgnored(t *testing.T) {
	s := NewDefaultSurface()
	s.ExtendStroke(Point{X: 10, Y: 10})
	s.ExtendStroke(Point{X: 100, Y: 100})
	if s.HasInk() {
		t.Fatalf("extend without begin must not draw")
	}

	s.BeginStroke(Point{X: 1, Y: 1})
	s.EndStroke()
	s.EndStroke()
	s.ExtendStroke(Point{X: 100, Y: 100})
	if s.HasInk() {
		t.Fatalf("extend after end must not draw")
	}
}

func TestSurface_RepeatedBeginKeepsSingleStroke(t *testing.T) {
	s := NewDefaultSurface()
	s.BeginStroke(Point{X: 10, Y: 10})
	s.BeginStroke(Point{X: 400, Y: 150})
	s.ExtendStroke(Point{X: 20, Y: 10})
	s.EndStroke()

	// The second pointer-down was ignored, so nothing was drawn near it.
	r, g, b, _ := s.Image().At(410*PixelRatio, 150*PixelRatio).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Fatalf("second begin must not start a new stroke")
	}
	if !s.HasInk() {
		t.Fatalf("expected the original stroke to be drawn")
	}
}

func TestSurface_Clear(t *testing.T) {
	s := NewDefaultSurface()
	s.BeginStroke(Point{X: 10, Y: 10})
	s.ExtendStroke(Point{X: 50, Y: 50})
	s.Clear()

	if s.HasInk() {
		t.Fatalf("clear must discard strokes")
	}
	if s.Drawing() {
		t.Fatalf("clear must end the stroke in progress")
	}
	s.ExtendStroke(Point{X: 90, Y: 90})
	if s.HasInk() {
		t.Fatalf("stroke must not survive clear")
	}
}

func TestSurface_DataURLRoundTrip(t *testing.T) {
	s := NewDefaultSurface()
	drawLine(s)

	url, err := s.DataURL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %.40s", url)
	}
	img, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !ImageHasInk(img) {
		t.Fatalf("decoded image lost the ink")
	}

	blank, _ := NewSurface(20, 10).DataURL()
	img, err = DecodeDataURL(blank)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if ImageHasInk(img) {
		t.Fatalf("blank surface decoded with ink")
	}
}

func TestDecodeDataURL_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "data:image/png,abc", "data:image/png;base64,@@@", "data:image/png;base64,aGVsbG8="} {
		if _, err := DecodeDataURL(in); !errors.Is(err, ErrInvalidDataURL) {
			t.Fatalf("input %q: expected ErrInvalidDataURL, got %v", in, err)
		}
	}
}

func TestImageHasInk_GenericImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.White)
		}
	}
	if ImageHasInk(img) {
		t.Fatalf("white image has no ink")
	}
	img.Set(2, 2, color.NRGBA{R: 0xff, G: 0xff, B: 0xfe, A: 0xff})
	if !ImageHasInk(img) {
		t.Fatalf("a single off-white channel counts as ink")
	}
}
