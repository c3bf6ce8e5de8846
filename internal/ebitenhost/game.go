// Package ebitenhost runs the layout engine inside an ebiten window.
package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/olivierh59500/bondgraph-go/internal/engine"
)

// Window describes the host window.
type Window struct {
	Width, Height int
	Title         string
	TPS           int
}

// Game adapts an engine to ebiten.Game.
type Game struct {
	engine  *engine.Engine
	surface *Surface
	input   *Input
	log     *zap.Logger
	now     func() time.Time
	posted  chan func()
}

// NewGame wires an already initialized engine to its surface and input.
func NewGame(e *engine.Engine, surface *Surface, input *Input, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		engine:  e,
		surface: surface,
		input:   input,
		log:     log,
		now:     time.Now,
		posted:  make(chan func(), 16),
	}
}

// Post schedules fn to run on the game loop before the next tick. It is safe
// to call from any goroutine; fn is dropped when the queue is full.
func (g *Game) Post(fn func()) {
	select {
	case g.posted <- fn:
	default:
		g.log.Warn("game loop queue full, dropping update")
	}
}

func (g *Game) runPosted() {
	for {
		select {
		case fn := <-g.posted:
			fn()
		default:
			return
		}
	}
}

// Update is called each tick by ebiten.
func (g *Game) Update() error {
	g.runPosted()
	if ebiten.IsWindowBeingClosed() || !g.engine.Alive() {
		g.engine.Teardown()
		return ebiten.Termination
	}
	g.input.Poll()
	g.engine.Tick(g.now())
	ebiten.SetCursorShape(cursorShape(g.engine.Cursor()))
	return nil
}

// Draw is called each frame by ebiten.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.setTarget(screen)
	g.engine.Render()
	g.surface.setTarget(nil)
}

// Layout tracks the window size and asks the engine to resize when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.surface.setOutside(outsideWidth, outsideHeight) {
		g.log.Debug("window resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
		g.input.dispatch(engine.Event{Kind: engine.EventResize})
	}
	return g.surface.Size()
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, w Window) error {
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(w.TPS)
	return ebiten.RunGame(g)
}

func cursorShape(c engine.Cursor) ebiten.CursorShapeType {
	switch c {
	case engine.CursorPointer:
		return ebiten.CursorShapePointer
	case engine.CursorMove:
		return ebiten.CursorShapeMove
	default:
		return ebiten.CursorShapeDefault
	}
}
