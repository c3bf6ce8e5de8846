package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/olivierh59500/bondgraph-go/internal/engine"
	"github.com/olivierh59500/bondgraph-go/internal/vec"
)

var background = color.RGBA{0, 0, 0, 255}

// Surface draws engine frames onto the ebiten screen image.
// It is its own Canvas; drawing outside Draw is a no-op.
type Surface struct {
	target        *ebiten.Image
	face          font.Face
	width, height int
	outW, outH    int
}

// NewSurface returns a surface for a window of the given size.
func NewSurface(width, height int) *Surface {
	return &Surface{
		face:   basicfont.Face7x13,
		width:  width,
		height: height,
		outW:   width,
		outH:   height,
	}
}

// Canvas implements engine.Surface.
func (s *Surface) Canvas() (engine.Canvas, error) {
	return s, nil
}

// ViewportSize returns the latest outside size reported by the window.
func (s *Surface) ViewportSize() (int, int) {
	return s.outW, s.outH
}

// SetSize sets the logical screen size returned from Layout.
func (s *Surface) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Size returns the logical screen size.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// setOutside records the window size; it reports whether it changed.
func (s *Surface) setOutside(width, height int) bool {
	if width == s.outW && height == s.outH {
		return false
	}
	s.outW, s.outH = width, height
	return true
}

func (s *Surface) setTarget(img *ebiten.Image) {
	s.target = img
}

func (s *Surface) Clear(width, height int) {
	if s.target == nil {
		return
	}
	s.target.Fill(background)
}

func (s *Surface) DrawLine(start, end vec.Vec2, c color.Color, width float64) {
	if s.target == nil || width <= 0 {
		return
	}
	vector.StrokeLine(s.target, float32(start.X), float32(start.Y), float32(end.X), float32(end.Y), float32(width), c, true)
}

func (s *Surface) DrawCircle(center vec.Vec2, radius float64, fill color.Color) {
	if s.target == nil || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(s.target, float32(center.X), float32(center.Y), float32(radius), fill, true)
}

func (s *Surface) DrawText(str string, pos vec.Vec2, f engine.Font, c color.Color) {
	if s.target == nil || str == "" {
		return
	}
	k := textScale(s.face, f.Size)
	origin := textOrigin(s.face, str, pos, f.Align, k)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(origin.X, origin.Y)
	op.ColorScale.ScaleWithColor(c)
	text.DrawWithOptions(s.target, str, s.face, op)
}

// textScale maps a requested pixel size onto the fixed bitmap face.
func textScale(face font.Face, size float64) float64 {
	h := float64(face.Metrics().Height.Round())
	if size <= 0 || h <= 0 {
		return 1
	}
	return size / h
}

// textOrigin returns the baseline origin of str drawn at pos.
func textOrigin(face font.Face, str string, pos vec.Vec2, align engine.Align, k float64) vec.Vec2 {
	if align != engine.AlignCenter {
		return pos
	}
	w := float64(font.MeasureString(face, str).Round()) * k
	return vec.New(pos.X-w/2, pos.Y)
}
