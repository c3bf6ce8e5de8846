// Package physics advances particle positions under bond attraction,
// all-pairs repulsion, a centering pull and damping.
package physics

import (
	"bytes"
	"math"

	"github.com/olivierh59500/bondgraph-go/internal/graph"
	"github.com/olivierh59500/bondgraph-go/internal/vec"
)

// Params are the force model constants.
type Params struct {
	Repulsion         float64 `mapstructure:"repulsion"`
	Mass              float64 `mapstructure:"mass"`
	AccelerationScale float64 `mapstructure:"acceleration_scale"`
	MaxAcceleration   float64 `mapstructure:"max_acceleration"`
	ForceDeadZone     float64 `mapstructure:"force_dead_zone"`
	ForceBlend        float64 `mapstructure:"force_blend"`
	Centering         float64 `mapstructure:"centering"`
	DampingBase       float64 `mapstructure:"damping_base"`
	DampingGrowth     float64 `mapstructure:"damping_growth"`
	DampingMax        float64 `mapstructure:"damping_max"`
	MinDistance       float64 `mapstructure:"min_distance"`
}

// DefaultParams returns the production force model.
func DefaultParams() Params {
	return Params{
		Repulsion:         10000,
		Mass:              2,
		AccelerationScale: 100,
		MaxAcceleration:   5000,
		ForceDeadZone:     1,
		ForceBlend:        0.1,
		Centering:         0.2,
		DampingBase:       0.5,
		DampingGrowth:     0.00001,
		DampingMax:        0.25,
		MinDistance:       0.01,
	}
}

// Integrator runs one force step per tick.
type Integrator struct {
	p Params
}

// NewIntegrator returns an integrator using p.
func NewIntegrator(p Params) *Integrator {
	return &Integrator{p: p}
}

// Step moves every node except dragged. Nodes are updated in order, each one
// seeing the positions already written for the nodes before it. The dragged
// node still pushes and pulls the others.
func (in *Integrator) Step(nodes []*graph.Node, edges *graph.EdgeSet, dragged graph.NodeID, dt float64) {
	for _, n := range nodes {
		if n.ID == dragged && dragged != graph.NoNode {
			continue
		}
		force := in.Force(n, nodes, edges)
		n.Velocity = in.Velocity(n.Velocity, n.Position, force)
		in.Integrate(n, dt)
	}
}

// Force sums bond attraction and repulsion acting on n.
func (in *Integrator) Force(n *graph.Node, nodes []*graph.Node, edges *graph.EdgeSet) vec.Vec2 {
	var total vec.Vec2
	for _, m := range nodes {
		if m == n {
			continue
		}
		delta, d := in.separation(n, m)
		if edges != nil {
			if e, ok := edges.Lookup(n.ID, m.ID); ok {
				total = total.Add(delta.Scale(e.Strength * math.Log10(d)))
			}
		}
		total = total.Sub(delta.Scale(in.p.Repulsion / (d * d)))
	}
	if !total.IsFinite() {
		return vec.Zero
	}
	return total
}

// separation returns the vector from n to m and its length, never shorter
// than MinDistance. Coincident nodes are split along x, in opposite
// directions for the two members of the pair.
func (in *Integrator) separation(n, m *graph.Node) (vec.Vec2, float64) {
	delta := m.Position.Sub(n.Position)
	d := delta.Len()
	if d >= in.p.MinDistance {
		return delta, d
	}
	if d == 0 {
		dir := 1.0
		if bytes.Compare(n.ID[:], m.ID[:]) > 0 {
			dir = -1
		}
		delta = vec.New(dir, 0)
	}
	return delta.Normalize().Scale(in.p.MinDistance), in.p.MinDistance
}

// Velocity blends v towards the force, then towards the origin, then towards rest.
func (in *Integrator) Velocity(v, pos, force vec.Vec2) vec.Vec2 {
	blend := 0.0
	if force.Len() > in.p.ForceDeadZone {
		blend = in.p.ForceBlend
	}
	v = v.Lerp(force, blend)

	r := pos.Len()
	pull := 1.0
	if r > 0 {
		pull = in.p.Centering / math.Sqrt(r)
	}
	v = v.Lerp(pos.Neg(), pull)

	return v.Lerp(vec.Zero, in.p.DampingBase+math.Min(in.p.DampingGrowth*r, in.p.DampingMax))
}

// Integrate advances n's position by one explicit step of length dt.
func (in *Integrator) Integrate(n *graph.Node, dt float64) {
	limit := vec.New(in.p.MaxAcceleration, in.p.MaxAcceleration)
	acc := n.Velocity.Div(in.p.Mass).Scale(in.p.AccelerationScale).Clamp(limit)
	n.PrevPosition = n.Position
	n.Position = n.Position.Add(acc.Scale(dt))
}
