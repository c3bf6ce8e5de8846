package graph

import (
	"sort"
	"sync"

	"github.com/olivierh59500/bondgraph-go/internal/profile"
)

// MaxConnections is the number of bonds each node picks for itself.
const MaxConnections = 3

// Scorer rates the similarity of two profiles in [0,1].
type Scorer interface {
	Score(a, b *profile.Profile) float64
}

// Builder recomputes the bond graph from scratch.
type Builder struct {
	scorer         Scorer
	maxConnections int
	parallel       bool
}

// NewBuilder returns a builder letting each node pick maxConnections bonds.
// With parallel set, score rows are computed concurrently; the result is the
// same as a sequential build.
func NewBuilder(scorer Scorer, maxConnections int, parallel bool) *Builder {
	if maxConnections <= 0 {
		maxConnections = MaxConnections
	}
	return &Builder{scorer: scorer, maxConnections: maxConnections, parallel: parallel}
}

// candidate is another node with its score against the node choosing bonds.
type candidate struct {
	index int
	score float64
}

// Rebuild bonds every node to its best-scoring peers.
func (b *Builder) Rebuild(nodes []*Node) *EdgeSet {
	edges, _ := b.build(nodes, NoNode)
	return edges
}

// RebuildFocus rebuilds like Rebuild and also returns the peers focus picked,
// best first, so a freshly added node can be placed among them.
func (b *Builder) RebuildFocus(nodes []*Node, focus NodeID) (*EdgeSet, []*Node) {
	return b.build(nodes, focus)
}

func (b *Builder) build(nodes []*Node, focus NodeID) (*EdgeSet, []*Node) {
	scores := b.scoreMatrix(nodes)
	edges := NewEdgeSet()
	var chosen []*Node

	for i, n := range nodes {
		candidates := make([]candidate, 0, len(nodes)-1)
		for j := range nodes {
			if j == i {
				continue
			}
			candidates = append(candidates, candidate{index: j, score: scores[i][j]})
		}
		// Ties keep enumeration order
		sort.SliceStable(candidates, func(x, y int) bool {
			return candidates[x].score > candidates[y].score
		})
		if len(candidates) > b.maxConnections {
			candidates = candidates[:b.maxConnections]
		}

		for _, c := range candidates {
			m := nodes[c.index]
			edges.Add(&Edge{A: n.ID, B: m.ID, Kind: Covalent, Strength: c.score})
			if focus != NoNode && n.ID == focus {
				chosen = append(chosen, m)
			}
		}
	}
	return edges, chosen
}

// scoreMatrix scores every ordered pair. Rows are independent, so in parallel
// mode each goroutine owns one row.
func (b *Builder) scoreMatrix(nodes []*Node) [][]float64 {
	scores := make([][]float64, len(nodes))
	for i := range scores {
		scores[i] = make([]float64, len(nodes))
	}

	row := func(i int) {
		for j := range nodes {
			if j != i {
				scores[i][j] = b.scorer.Score(nodes[i].Profile, nodes[j].Profile)
			}
		}
	}

	if !b.parallel {
		for i := range nodes {
			row(i)
		}
		return scores
	}

	var wg sync.WaitGroup
	for i := range nodes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			row(i)
		}(i)
	}
	wg.Wait()
	return scores
}
