package ebitenhost

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/olivierh59500/bondgraph-go/internal/engine"
	"github.com/olivierh59500/bondgraph-go/internal/vec"
)

func defaultBindings() map[engine.Command]string {
	return map[engine.Command]string{
		engine.CommandAddNode:        "N",
		engine.CommandDeleteNode:     "D",
		engine.CommandZeroVelocities: "B",
		engine.CommandReset:          "R",
		engine.CommandPause:          "S",
		engine.CommandPan:            "Space",
	}
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("Space")
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeySpace, k)

	k, err = ParseKey("N")
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeyN, k)

	_, err = ParseKey("NoSuchKey")
	assert.Error(t, err)
}

func TestNewInputRejectsBadBindings(t *testing.T) {
	b := defaultBindings()
	b[engine.CommandReset] = "N"
	_, err := NewInput(b)
	assert.Error(t, err)

	b = defaultBindings()
	b[engine.CommandPan] = "Hyper"
	_, err = NewInput(b)
	assert.Error(t, err)
}

func TestInputEvents(t *testing.T) {
	in, err := NewInput(defaultBindings())
	require.NoError(t, err)

	var got []engine.Event
	unbind := in.Bind(func(ev engine.Event) { got = append(got, ev) })

	first := in.events(frame{focused: true, cursor: vec.New(10, 20)})
	require.Len(t, first, 1)
	assert.Equal(t, engine.EventPointerMove, first[0].Kind)

	// Same cursor, nothing new.
	assert.Empty(t, in.events(frame{focused: true, cursor: vec.New(10, 20)}))

	evs := in.events(frame{
		focused:  true,
		cursor:   vec.New(10, 20),
		pressed:  true,
		wheelY:   -1,
		keysDown: []ebiten.Key{ebiten.KeyN},
		keysUp:   []ebiten.Key{ebiten.KeySpace},
	})
	require.Len(t, evs, 4)
	assert.Equal(t, engine.Event{Kind: engine.EventPointerDown, Pos: vec.New(10, 20)}, evs[0])
	assert.Equal(t, engine.EventScroll, evs[1].Kind)
	assert.Equal(t, WheelStep, evs[1].Delta)
	assert.Equal(t, engine.Event{Kind: engine.EventKeyDown, Command: engine.CommandAddNode}, evs[2])
	assert.Equal(t, engine.Event{Kind: engine.EventKeyUp, Command: engine.CommandPan}, evs[3])

	for _, ev := range evs {
		in.dispatch(ev)
	}
	assert.Len(t, got, 4)

	unbind()
	in.dispatch(engine.Event{Kind: engine.EventResize})
	assert.Len(t, got, 4)
}

func TestInputFocusRegained(t *testing.T) {
	in, err := NewInput(defaultBindings())
	require.NoError(t, err)
	in.events(frame{focused: true})

	assert.Empty(t, filter(in.events(frame{focused: false}), engine.EventFocus))
	focus := filter(in.events(frame{focused: true}), engine.EventFocus)
	assert.Len(t, focus, 1)
}

func filter(evs []engine.Event, kind engine.EventKind) []engine.Event {
	var out []engine.Event
	for _, ev := range evs {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func TestSurfaceSize(t *testing.T) {
	s := NewSurface(800, 600)
	w, h := s.ViewportSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	assert.False(t, s.setOutside(800, 600))
	assert.True(t, s.setOutside(1024, 768))
	s.SetSize(s.ViewportSize())
	w, h = s.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)

	c, err := s.Canvas()
	require.NoError(t, err)
	// No target outside Draw.
	c.Clear(w, h)
	c.DrawLine(vec.Zero, vec.New(1, 1), nil, 1)
	c.DrawCircle(vec.Zero, 5, nil)
	c.DrawText("x", vec.Zero, engine.Font{}, nil)
}

func TestLayoutEmitsResize(t *testing.T) {
	in, err := NewInput(defaultBindings())
	require.NoError(t, err)
	var got []engine.Event
	in.Bind(func(ev engine.Event) { got = append(got, ev) })

	g := NewGame(nil, NewSurface(640, 480), in, nil)

	w, h := g.Layout(640, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Empty(t, got)

	g.Layout(900, 700)
	require.Len(t, got, 1)
	assert.Equal(t, engine.EventResize, got[0].Kind)
}

func TestTextPlacement(t *testing.T) {
	face := basicfont.Face7x13
	assert.InDelta(t, 1.0, textScale(face, 13), 1e-9)
	assert.InDelta(t, 2.0, textScale(face, 26), 1e-9)
	assert.Equal(t, 1.0, textScale(face, 0))

	pos := vec.New(100, 50)
	assert.Equal(t, pos, textOrigin(face, "Ada", pos, engine.AlignLeft, 1))
	centered := textOrigin(face, "Ada", pos, engine.AlignCenter, 2)
	assert.Equal(t, vec.New(100-21, 50), centered)
}

func TestCursorShape(t *testing.T) {
	assert.Equal(t, ebiten.CursorShapeDefault, cursorShape(engine.CursorDefault))
	assert.Equal(t, ebiten.CursorShapePointer, cursorShape(engine.CursorPointer))
	assert.Equal(t, ebiten.CursorShapeMove, cursorShape(engine.CursorMove))
}

func TestPostRunsOnLoop(t *testing.T) {
	g := NewGame(nil, NewSurface(10, 10), nil, nil)
	ran := 0
	g.Post(func() { ran++ })
	g.Post(func() { ran++ })
	assert.Zero(t, ran)

	g.runPosted()
	assert.Equal(t, 2, ran)
	g.runPosted()
	assert.Equal(t, 2, ran)
}
