// Package graph holds the particles and bonds of the layout and rebuilds the
// bond topology from profile similarity.
package graph

import (
	"math"

	"github.com/google/uuid"
	"github.com/olivierh59500/bondgraph-go/internal/profile"
	"github.com/olivierh59500/bondgraph-go/internal/vec"
)

// Node defaults
const (
	DefaultRadius   = 25.0
	DefaultFriction = 1.0
)

// NodeID is an opaque particle handle. The zero value means "no node".
type NodeID = uuid.UUID

// NoNode is the zero NodeID.
var NoNode = NodeID{}

// Node is one particle representing a profile.
type Node struct {
	ID           NodeID
	Position     vec.Vec2
	PrevPosition vec.Vec2
	Velocity     vec.Vec2
	Radius       float64
	Friction     float64
	Profile      *profile.Profile
}

// NewNode creates a resting node at pos.
func NewNode(p *profile.Profile, pos vec.Vec2) *Node {
	return &Node{
		ID:           uuid.New(),
		Position:     pos,
		PrevPosition: pos,
		Radius:       DefaultRadius,
		Friction:     DefaultFriction,
		Profile:      p,
	}
}

// AnimatedRadius grows the drawn radius with speed, up to 20%.
func (n *Node) AnimatedRadius() float64 {
	return n.Radius * (1 + math.Min(n.Velocity.Len(), n.Radius*2)/(n.Radius*10))
}

// Contains reports whether the world point p lies within the node's radius.
func (n *Node) Contains(p vec.Vec2) bool {
	return n.Position.Dist(p) <= n.Radius
}

// Find returns the node with the given id.
func Find(nodes []*Node, id NodeID) *Node {
	if id == NoNode {
		return nil
	}
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// At returns the first node containing the world point p.
func At(nodes []*Node, p vec.Vec2) *Node {
	for _, n := range nodes {
		if n.Contains(p) {
			return n
		}
	}
	return nil
}

// Remove returns nodes without the node with the given id, and whether it was present.
func Remove(nodes []*Node, id NodeID) ([]*Node, bool) {
	for i, n := range nodes {
		if n.ID == id {
			return append(nodes[:i:i], nodes[i+1:]...), true
		}
	}
	return nodes, false
}
