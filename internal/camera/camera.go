// Package camera maps the simulated world onto the screen with smoothed pan and zoom.
package camera

import (
	"math"

	"github.com/olivierh59500/bondgraph-go/internal/vec"
)

// Config holds zoom limits and smoothing factors. Smoothing factors are
// applied once per tick, so the apparent smoothing speed follows the frame rate.
type Config struct {
	MinScale        float64 `mapstructure:"min_scale"`
	MaxScale        float64 `mapstructure:"max_scale"`
	ZoomSensitivity float64 `mapstructure:"zoom_sensitivity"`
	ZoomSmoothing   float64 `mapstructure:"zoom_smoothing"`
	PanSmoothing    float64 `mapstructure:"pan_smoothing"`
}

// DefaultConfig returns the production camera settings.
func DefaultConfig() Config {
	return Config{
		MinScale:        0.01,
		MaxScale:        10,
		ZoomSensitivity: 0.0004,
		ZoomSmoothing:   0.1,
		PanSmoothing:    0.5,
	}
}

// Camera is the viewport transform: screen = (world - Offset) * Scale.
type Camera struct {
	cfg Config

	Offset       vec.Vec2
	TargetOffset vec.Vec2
	Scale        float64
	TargetScale  float64
	ScaleAnchor  vec.Vec2

	// Panning is true while the pan modifier is held.
	Panning bool

	panAnchor   vec.Vec2
	panOrigin   vec.Vec2
	panAnchored bool
}

// New returns a camera at the origin with scale 1.
func New(cfg Config) *Camera {
	return &Camera{cfg: cfg, Scale: 1, TargetScale: 1}
}

// SetConfig swaps limits and smoothing factors, keeping the current view.
func (c *Camera) SetConfig(cfg Config) {
	c.cfg = cfg
	c.TargetScale = c.clampScale(c.TargetScale)
}

// Zoom applies a wheel delta (positive scrolls down and zooms out). The scale
// anchor shifts so that pointerWorld stays roughly under the pointer.
func (c *Camera) Zoom(wheelDelta float64, pointerWorld vec.Vec2) {
	next := c.clampScale(c.TargetScale + wheelDelta*-c.cfg.ZoomSensitivity)
	zoomDelta := c.TargetScale - next
	c.TargetScale = next
	c.ScaleAnchor = c.ScaleAnchor.Add(pointerWorld.Scale(-zoomDelta))
}

func (c *Camera) clampScale(s float64) float64 {
	return math.Min(math.Max(s, c.cfg.MinScale), c.cfg.MaxScale)
}

// Step eases scale and offset towards their targets.
func (c *Camera) Step() {
	zs := c.cfg.ZoomSmoothing
	c.Scale = c.Scale*(1-zs) + c.TargetScale*zs

	ps := c.cfg.PanSmoothing
	c.Offset = c.Offset.Scale(1 - ps).Add(c.TargetOffset.Add(c.ScaleAnchor).Scale(ps))
}

// BeginPan records a screen-space anchor. It does nothing when an anchor is
// already set or the pan modifier is not held.
func (c *Camera) BeginPan(screen vec.Vec2) bool {
	if !c.Panning || c.panAnchored {
		return false
	}
	c.panAnchor = screen
	c.panOrigin = c.TargetOffset
	c.panAnchored = true
	return true
}

// DragPan moves the target offset by the pointer travel since BeginPan,
// converted to world units.
func (c *Camera) DragPan(screen vec.Vec2) {
	if !c.panAnchored {
		return
	}
	c.TargetOffset = c.panOrigin.Add(c.panAnchor.Sub(screen).Div(c.Scale))
}

// EndPan clears the pan anchor.
func (c *Camera) EndPan() {
	c.panAnchored = false
}

// WorldToScreen maps a world point to screen pixels.
func (c *Camera) WorldToScreen(w vec.Vec2) vec.Vec2 {
	return w.Sub(c.Offset).Scale(c.Scale)
}

// ScreenToWorld maps screen pixels to a world point.
func (c *Camera) ScreenToWorld(s vec.Vec2) vec.Vec2 {
	return s.Div(c.Scale).Add(c.Offset)
}
