package engine

import "github.com/olivierh59500/bondgraph-go/internal/vec"

// Command is a user command delivered through a key event.
type Command int

const (
	CommandNone Command = iota
	CommandAddNode
	CommandDeleteNode
	CommandZeroVelocities
	CommandReset
	CommandPause // held
	CommandPan   // held
)

func (c Command) String() string {
	switch c {
	case CommandAddNode:
		return "add_node"
	case CommandDeleteNode:
		return "delete_node"
	case CommandZeroVelocities:
		return "zero_velocities"
	case CommandReset:
		return "reset"
	case CommandPause:
		return "pause"
	case CommandPan:
		return "pan"
	default:
		return "none"
	}
}

// flag returns the held flag of a hold-to-activate command, or 0.
func (c Command) flag() Flags {
	switch c {
	case CommandPause:
		return FlagPause
	case CommandPan:
		return FlagPan
	}
	return 0
}

// Flags is the set of held commands.
type Flags uint8

const (
	FlagPause Flags = 1 << iota
	FlagPan
)

// Has reports whether every flag in x is set.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

// EventKind tells what an Event carries.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventScroll
	EventKeyDown
	EventKeyUp
	EventFocus
	EventResize
)

// Event is one host input notification.
type Event struct {
	Kind EventKind
	// Pos is the pointer position in screen pixels for pointer events.
	Pos vec.Vec2
	// Delta is the scroll amount, positive when scrolling down.
	Delta float64
	// Command is the command bound to the key of a key event.
	Command Command
}

// Cursor is the pointer style the host should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorMove
)
