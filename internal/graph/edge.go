package graph

import (
	"bytes"
	"image/color"
)

// BondKind classifies an edge.
type BondKind int

const (
	Covalent BondKind = iota
	Ionic
	Metallic
)

func (k BondKind) String() string {
	switch k {
	case Covalent:
		return "covalent"
	case Ionic:
		return "ionic"
	case Metallic:
		return "metallic"
	default:
		return "unknown"
	}
}

// Color is the flat colour used to draw bonds of this kind.
func (k BondKind) Color() color.RGBA {
	switch k {
	case Ionic:
		return color.RGBA{0, 0, 255, 255}
	case Metallic:
		return color.RGBA{255, 0, 0, 255}
	default:
		return color.RGBA{255, 255, 255, 255}
	}
}

// Edge is an undirected bond between A and B.
type Edge struct {
	A, B     NodeID
	Kind     BondKind
	Strength float64
}

// Other returns the endpoint of e opposite id.
func (e *Edge) Other(id NodeID) (NodeID, bool) {
	switch id {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	}
	return NoNode, false
}

// pairKey is an unordered node pair in canonical order.
type pairKey struct {
	lo, hi NodeID
}

func keyOf(a, b NodeID) pairKey {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// EdgeSet is the active bond collection. The slice and the pair index are
// only mutated together, so a pair is bonded exactly when its edge is listed.
type EdgeSet struct {
	edges []*Edge
	index map[pairKey]*Edge
}

// NewEdgeSet returns an empty set.
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{index: make(map[pairKey]*Edge)}
}

// Add inserts e unless its pair is already bonded, in either order.
func (s *EdgeSet) Add(e *Edge) bool {
	if e.A == e.B {
		return false
	}
	k := keyOf(e.A, e.B)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = e
	s.edges = append(s.edges, e)
	return true
}

// Lookup returns the bond between a and b.
func (s *EdgeSet) Lookup(a, b NodeID) (*Edge, bool) {
	e, ok := s.index[keyOf(a, b)]
	return e, ok
}

// Len returns the number of bonds.
func (s *EdgeSet) Len() int {
	return len(s.edges)
}

// Edges returns the bonds in insertion order. Callers must not modify the slice.
func (s *EdgeSet) Edges() []*Edge {
	return s.edges
}

// Neighbors returns the ids bonded to id.
func (s *EdgeSet) Neighbors(id NodeID) []NodeID {
	var out []NodeID
	for _, e := range s.edges {
		if other, ok := e.Other(id); ok {
			out = append(out, other)
		}
	}
	return out
}

// RemoveNode drops every bond referencing id and returns how many were removed.
func (s *EdgeSet) RemoveNode(id NodeID) int {
	kept := s.edges[:0]
	removed := 0
	for _, e := range s.edges {
		if e.A == id || e.B == id {
			delete(s.index, keyOf(e.A, e.B))
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.edges); i++ {
		s.edges[i] = nil
	}
	s.edges = kept
	return removed
}

// Clear removes every bond.
func (s *EdgeSet) Clear() {
	s.edges = nil
	s.index = make(map[pairKey]*Edge)
}
