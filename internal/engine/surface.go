package engine

import (
	"image/color"
	"time"

	"github.com/olivierh59500/bondgraph-go/internal/vec"
)

// Align is the horizontal anchoring of drawn text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Font describes how text is drawn.
type Font struct {
	Size  float64
	Align Align
}

// Canvas is a 2-D drawing context in screen pixels.
type Canvas interface {
	Clear(width, height int)
	DrawLine(start, end vec.Vec2, c color.Color, width float64)
	DrawCircle(center vec.Vec2, radius float64, fill color.Color)
	DrawText(s string, pos vec.Vec2, font Font, c color.Color)
}

// Surface is the drawing target the engine binds to.
type Surface interface {
	// Canvas returns the drawing context, or an error when none is usable.
	Canvas() (Canvas, error)
	// ViewportSize returns the host viewport in pixels.
	ViewportSize() (width, height int)
	SetSize(width, height int)
}

// InputSource delivers host input events to a bound handler.
type InputSource interface {
	// Bind registers handler and returns a function removing it.
	Bind(handler func(Event)) (unbind func())
}

// Metrics receives engine measurements.
type Metrics interface {
	ObserveRebuild(d time.Duration)
	SetPopulation(nodes, edges int)
	SetAverageFPS(fps float64)
	IncCommand(name string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveRebuild(time.Duration) {}
func (nopMetrics) SetPopulation(int, int)       {}
func (nopMetrics) SetAverageFPS(float64)        {}
func (nopMetrics) IncCommand(string)            {}
