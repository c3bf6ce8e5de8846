// Package engine runs the profile layout simulation: it drains input events,
// applies commands, integrates forces, eases the camera and renders a frame.
//
// An Engine is driven by a single goroutine. The host delivers events through
// the bound InputSource handler and calls Tick and Render from its frame loop;
// events are buffered and applied at the start of the next tick.
package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/olivierh59500/bondgraph-go/internal/camera"
	"github.com/olivierh59500/bondgraph-go/internal/graph"
	"github.com/olivierh59500/bondgraph-go/internal/physics"
	"github.com/olivierh59500/bondgraph-go/internal/profile"
	"github.com/olivierh59500/bondgraph-go/internal/similarity"
	"github.com/olivierh59500/bondgraph-go/internal/vec"
	"go.uber.org/zap"
)

// Loop constants
const (
	DefaultMaxDT = 0.1  // Longest integration step in seconds
	FPSSmoothing = 0.05 // Average frame rate blend per tick
	InitialFPS   = 60.0
	SeedSpread   = 500.0 // Half-width of the square initial nodes are scattered in
)

var (
	// ErrNoDrawingContext means the surface could not provide a usable canvas.
	ErrNoDrawingContext = errors.New("engine: no usable drawing context")
	// ErrNotInitialized means the engine is not bound to a surface.
	ErrNotInitialized = errors.New("engine: not initialized")
)

// Options configures an Engine.
type Options struct {
	Physics         physics.Params
	Camera          camera.Config
	Weights         similarity.Weights
	MaxConnections  int
	ParallelScoring bool
	MaxDT           float64
	Seed            int64
	InitialNodes    int
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		Physics:        physics.DefaultParams(),
		Camera:         camera.DefaultConfig(),
		Weights:        similarity.DefaultWeights(),
		MaxConnections: graph.MaxConnections,
		MaxDT:          DefaultMaxDT,
		Seed:           time.Now().UnixNano(),
	}
}

// Engine owns one simulation: its nodes, bonds, camera and input intent.
type Engine struct {
	opts       Options
	log        *zap.Logger
	metrics    Metrics
	provider   profile.Provider
	scorer     *similarity.Scorer
	builder    *graph.Builder
	integrator *physics.Integrator
	cam        *camera.Camera
	rng        *rand.Rand

	nodes []*graph.Node
	edges *graph.EdgeSet

	surface       Surface
	canvas        Canvas
	unbind        func()
	alive         bool
	width, height int

	pending  []Event
	held     Flags
	pointer  vec.Vec2 // screen pixels
	dragging graph.NodeID
	hovered  graph.NodeID
	cursor   Cursor

	lastTick time.Time
	dt       float64
	avgFPS   float64
}

// New creates an engine drawing profiles from provider. A nil metrics sink is allowed.
func New(opts Options, provider profile.Provider, log *zap.Logger, metrics Metrics) *Engine {
	if opts.MaxDT <= 0 {
		opts.MaxDT = DefaultMaxDT
	}
	if log == nil {
		log = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	scorer := similarity.NewScorer(opts.Weights)
	return &Engine{
		opts:       opts,
		log:        log,
		metrics:    metrics,
		provider:   provider,
		scorer:     scorer,
		builder:    graph.NewBuilder(scorer, opts.MaxConnections, opts.ParallelScoring),
		integrator: physics.NewIntegrator(opts.Physics),
		cam:        camera.New(opts.Camera),
		rng:        rand.New(rand.NewSource(opts.Seed)),
		edges:      graph.NewEdgeSet(),
		avgFPS:     InitialFPS,
	}
}

// Initialize binds the engine to surface and input and starts accepting ticks.
// When the surface has no usable canvas the failure is logged and the engine
// stays inert; the error is returned for the caller to decide.
func (e *Engine) Initialize(surface Surface, input InputSource) error {
	if surface == nil {
		e.log.Error("drawing surface missing, layout disabled")
		return ErrNoDrawingContext
	}
	canvas, err := surface.Canvas()
	if err != nil {
		e.log.Error("failed to get drawing context, layout disabled", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrNoDrawingContext, err)
	}
	if canvas == nil {
		e.log.Error("surface returned no drawing context, layout disabled")
		return ErrNoDrawingContext
	}
	if e.alive {
		e.Teardown()
	}

	e.surface = surface
	e.canvas = canvas
	e.alive = true
	_ = e.Resize()

	if input != nil {
		e.unbind = input.Bind(e.enqueue)
	}
	if e.opts.InitialNodes > 0 {
		e.seedPopulation(e.opts.InitialNodes)
	}

	e.log.Info("layout engine initialized",
		zap.Int("width", e.width),
		zap.Int("height", e.height),
		zap.Int("nodes", len(e.nodes)),
		zap.Int("edges", e.edges.Len()))
	return nil
}

// Resize reads the host viewport and applies it to the surface.
func (e *Engine) Resize() error {
	if e.surface == nil {
		return ErrNotInitialized
	}
	e.width, e.height = e.surface.ViewportSize()
	e.surface.SetSize(e.width, e.height)
	return nil
}

// Teardown removes the input binding and stops the engine. Ticks arriving
// afterwards are ignored.
func (e *Engine) Teardown() {
	if e.unbind != nil {
		e.unbind()
		e.unbind = nil
	}
	if e.alive {
		e.log.Info("layout engine torn down")
	}
	e.alive = false
	e.pending = nil
}

// Alive reports whether the engine accepts ticks.
func (e *Engine) Alive() bool { return e.alive }

func (e *Engine) enqueue(ev Event) {
	if !e.alive {
		return
	}
	e.pending = append(e.pending, ev)
}

// Tick advances the simulation to now.
func (e *Engine) Tick(now time.Time) {
	if !e.alive {
		return
	}
	e.drain()
	e.updateCursor()

	e.dt = e.frameDelta(now)
	e.updateFPS(e.dt)

	if !e.held.Has(FlagPause) {
		e.integrator.Step(e.nodes, e.edges, e.dragging, e.dt)
	}
	e.updateDragged()
	e.cam.Step()

	e.metrics.SetAverageFPS(e.avgFPS)
}

func (e *Engine) frameDelta(now time.Time) float64 {
	if e.lastTick.IsZero() {
		e.lastTick = now
		return 0
	}
	dt := math.Min(now.Sub(e.lastTick).Seconds(), e.opts.MaxDT)
	e.lastTick = now
	return math.Max(dt, 0)
}

func (e *Engine) updateFPS(dt float64) {
	if dt <= 0 {
		return
	}
	e.avgFPS = e.avgFPS*(1-FPSSmoothing) + (1/dt)*FPSSmoothing
}

func (e *Engine) updateCursor() {
	e.hovered = graph.NoNode
	if n := graph.At(e.nodes, e.pointerWorld()); n != nil {
		e.hovered = n.ID
	}
	switch {
	case e.cam.Panning:
		e.cursor = CursorMove
	case e.hovered != graph.NoNode:
		e.cursor = CursorPointer
	case e.dragging == graph.NoNode:
		e.cursor = CursorDefault
	}
}

func (e *Engine) updateDragged() {
	if e.dragging == graph.NoNode {
		return
	}
	n := graph.Find(e.nodes, e.dragging)
	if n == nil {
		e.dragging = graph.NoNode
		return
	}
	n.Position = e.pointerWorld()
}

func (e *Engine) pointerWorld() vec.Vec2 {
	return e.cam.ScreenToWorld(e.pointer)
}

// drain applies buffered events in arrival order.
func (e *Engine) drain() {
	events := e.pending
	e.pending = nil
	for _, ev := range events {
		e.apply(ev)
	}
}

func (e *Engine) apply(ev Event) {
	switch ev.Kind {
	case EventPointerDown:
		e.pointer = ev.Pos
		if e.cam.Panning {
			e.cam.BeginPan(ev.Pos)
			return
		}
		if n := graph.At(e.nodes, e.pointerWorld()); n != nil {
			e.dragging = n.ID
		}
	case EventPointerMove:
		e.pointer = ev.Pos
		e.cam.DragPan(ev.Pos)
	case EventPointerUp:
		e.pointer = ev.Pos
		e.dragging = graph.NoNode
		e.cam.EndPan()
	case EventScroll:
		e.cam.Zoom(ev.Delta, e.pointerWorld())
	case EventKeyDown:
		e.press(ev.Command)
	case EventKeyUp:
		e.release(ev.Command)
	case EventFocus:
		e.held = 0
		e.cam.Panning = false
		e.cam.EndPan()
		e.dragging = graph.NoNode
	case EventResize:
		_ = e.Resize()
	}
}

func (e *Engine) press(cmd Command) {
	if f := cmd.flag(); f != 0 {
		e.held |= f
		if f == FlagPan {
			e.cam.Panning = true
		}
		return
	}
	switch cmd {
	case CommandAddNode:
		e.AddNode(e.pointerWorld())
	case CommandDeleteNode:
		e.DeleteNodeAt(e.pointerWorld())
	case CommandZeroVelocities:
		e.ZeroVelocities()
	case CommandReset:
		e.Reset()
	default:
		return
	}
	e.metrics.IncCommand(cmd.String())
}

func (e *Engine) release(cmd Command) {
	f := cmd.flag()
	if f == 0 {
		return
	}
	e.held &^= f
	if f == FlagPan {
		e.cam.Panning = false
	}
}

// AddNode creates a node for the next profile near at, rebuilds the bonds and
// places the node at the centroid of the peers it bonded to.
func (e *Engine) AddNode(at vec.Vec2) *graph.Node {
	p, err := e.provider.Next()
	if err != nil {
		e.log.Warn("no profile for new node", zap.Error(err))
		return nil
	}
	n := graph.NewNode(p, at.Add(e.jitter()))
	e.nodes = append(e.nodes, n)

	start := time.Now()
	edges, peers := e.builder.RebuildFocus(e.nodes, n.ID)
	e.setEdges(edges, time.Since(start))

	points := make([]vec.Vec2, 0, len(peers))
	for _, m := range peers {
		points = append(points, m.Position)
	}
	base := vec.Centroid(points)
	if len(points) == 0 {
		base = e.jitter()
	}
	n.Position = base.Add(e.jitter())
	n.PrevPosition = n.Position

	e.log.Debug("node added",
		zap.Stringer("id", n.ID),
		zap.String("name", p.Name),
		zap.Int("peers", len(peers)))
	return n
}

// DeleteNodeAt removes the node under the world point at, if any.
func (e *Engine) DeleteNodeAt(at vec.Vec2) bool {
	n := graph.At(e.nodes, at)
	if n == nil {
		return false
	}
	return e.DeleteNode(n.ID)
}

// DeleteNode removes a node and every bond touching it, then rebuilds the bonds.
func (e *Engine) DeleteNode(id graph.NodeID) bool {
	nodes, ok := graph.Remove(e.nodes, id)
	if !ok {
		return false
	}
	e.nodes = nodes
	e.edges.RemoveNode(id)
	if e.dragging == id {
		e.dragging = graph.NoNode
	}
	if e.hovered == id {
		e.hovered = graph.NoNode
	}
	e.rebuild()
	e.log.Debug("node deleted", zap.Stringer("id", id))
	return true
}

// ZeroVelocities stops every node.
func (e *Engine) ZeroVelocities() {
	for _, n := range e.nodes {
		n.Velocity = vec.Zero
	}
}

// Reset drops every node and bond and any drag in progress.
func (e *Engine) Reset() {
	e.nodes = nil
	e.edges.Clear()
	e.dragging = graph.NoNode
	e.hovered = graph.NoNode
	e.metrics.SetPopulation(0, 0)
	e.log.Debug("simulation reset")
}

func (e *Engine) seedPopulation(count int) {
	for i := 0; i < count; i++ {
		at := vec.New((e.rng.Float64()*2-1)*SeedSpread, (e.rng.Float64()*2-1)*SeedSpread)
		if e.AddNode(at) == nil {
			e.log.Warn("initial population cut short", zap.Int("nodes", i))
			return
		}
	}
}

func (e *Engine) rebuild() {
	start := time.Now()
	edges := e.builder.Rebuild(e.nodes)
	e.setEdges(edges, time.Since(start))
}

func (e *Engine) setEdges(edges *graph.EdgeSet, took time.Duration) {
	e.edges = edges
	e.metrics.ObserveRebuild(took)
	e.metrics.SetPopulation(len(e.nodes), edges.Len())
	e.log.Debug("bonds rebuilt",
		zap.Int("nodes", len(e.nodes)),
		zap.Int("edges", edges.Len()),
		zap.Duration("took", took))
}

func (e *Engine) jitter() vec.Vec2 {
	return vec.New(e.rng.Float64(), e.rng.Float64())
}

// SetCameraConfig swaps camera limits and smoothing without moving the view.
func (e *Engine) SetCameraConfig(cfg camera.Config) {
	e.cam.SetConfig(cfg)
}

// Nodes returns the live nodes. Callers must not modify the slice.
func (e *Engine) Nodes() []*graph.Node { return e.nodes }

// Edges returns the active bonds.
func (e *Engine) Edges() *graph.EdgeSet { return e.edges }

// Camera returns the viewport.
func (e *Engine) Camera() *camera.Camera { return e.cam }

// Dragging returns the dragged node id, or graph.NoNode.
func (e *Engine) Dragging() graph.NodeID { return e.dragging }

// Cursor returns the pointer style for the current state.
func (e *Engine) Cursor() Cursor { return e.cursor }

// AverageFPS returns the smoothed frame rate.
func (e *Engine) AverageFPS() float64 { return e.avgFPS }
