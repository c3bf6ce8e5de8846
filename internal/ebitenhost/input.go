package ebitenhost

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/bondgraph-go/internal/engine"
	"github.com/olivierh59500/bondgraph-go/internal/vec"
)

// WheelStep converts one ebiten wheel notch to scroll pixels, positive
// when scrolling down.
const WheelStep = 100.0

// ParseKey resolves a key name such as "N" or "Space".
func ParseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("ebitenhost: unknown key %q: %w", name, err)
	}
	return k, nil
}

// frame is the input state polled in one update.
type frame struct {
	focused  bool
	cursor   vec.Vec2
	pressed  bool
	released bool
	wheelY   float64
	keysDown []ebiten.Key
	keysUp   []ebiten.Key
}

// Input polls ebiten once per update and turns changes into engine events.
type Input struct {
	bindings map[ebiten.Key]engine.Command
	keys     []ebiten.Key

	handlers map[int]func(engine.Event)
	nextID   int

	focused     bool
	cursor      vec.Vec2
	cursorKnown bool
}

// NewInput maps each command to the key named in bindings.
func NewInput(bindings map[engine.Command]string) (*Input, error) {
	in := &Input{
		bindings: make(map[ebiten.Key]engine.Command, len(bindings)),
		handlers: make(map[int]func(engine.Event)),
		focused:  true,
	}
	for cmd, name := range bindings {
		k, err := ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cmd, err)
		}
		if other, ok := in.bindings[k]; ok {
			return nil, fmt.Errorf("ebitenhost: key %q bound to %s and %s", name, other, cmd)
		}
		in.bindings[k] = cmd
		in.keys = append(in.keys, k)
	}
	sort.Slice(in.keys, func(i, j int) bool { return in.keys[i] < in.keys[j] })
	return in, nil
}

// Bind implements engine.InputSource.
func (in *Input) Bind(handler func(engine.Event)) func() {
	id := in.nextID
	in.nextID++
	in.handlers[id] = handler
	return func() { delete(in.handlers, id) }
}

// Poll reads this update's input and dispatches the resulting events.
func (in *Input) Poll() {
	for _, ev := range in.events(in.read()) {
		in.dispatch(ev)
	}
}

func (in *Input) dispatch(ev engine.Event) {
	for _, h := range in.handlers {
		h(ev)
	}
}

func (in *Input) read() frame {
	x, y := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	f := frame{
		focused:  ebiten.IsFocused(),
		cursor:   vec.New(float64(x), float64(y)),
		pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		wheelY:   wy,
	}
	for _, k := range in.keys {
		if inpututil.IsKeyJustPressed(k) {
			f.keysDown = append(f.keysDown, k)
		}
		if inpututil.IsKeyJustReleased(k) {
			f.keysUp = append(f.keysUp, k)
		}
	}
	return f
}

// events translates a polled frame into engine events in a fixed order:
// focus, move, press, release, scroll, then keys.
func (in *Input) events(f frame) []engine.Event {
	var out []engine.Event

	if f.focused && !in.focused {
		out = append(out, engine.Event{Kind: engine.EventFocus})
	}
	in.focused = f.focused

	if !in.cursorKnown || f.cursor != in.cursor {
		out = append(out, engine.Event{Kind: engine.EventPointerMove, Pos: f.cursor})
		in.cursor, in.cursorKnown = f.cursor, true
	}
	if f.pressed {
		out = append(out, engine.Event{Kind: engine.EventPointerDown, Pos: f.cursor})
	}
	if f.released {
		out = append(out, engine.Event{Kind: engine.EventPointerUp, Pos: f.cursor})
	}
	if f.wheelY != 0 {
		out = append(out, engine.Event{Kind: engine.EventScroll, Delta: -f.wheelY * WheelStep})
	}
	for _, k := range f.keysDown {
		out = append(out, engine.Event{Kind: engine.EventKeyDown, Command: in.bindings[k]})
	}
	for _, k := range f.keysUp {
		out = append(out, engine.Event{Kind: engine.EventKeyUp, Command: in.bindings[k]})
	}
	return out
}
