package physics

import (
	"testing"

	"github.com/olivierh59500/bondgraph-go/internal/graph"
	"github.com/olivierh59500/bondgraph-go/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pair(a, b vec.Vec2) (*graph.Node, *graph.Node) {
	return graph.NewNode(nil, a), graph.NewNode(nil, b)
}

func TestForce_RepulsionInverseDistance(t *testing.T) {
	in := NewIntegrator(DefaultParams())

	n, far := pair(vec.New(0, 0), vec.New(200, 0))
	_, near := pair(vec.Zero, vec.New(100, 0))

	fFar := in.Force(n, []*graph.Node{n, far}, graph.NewEdgeSet())
	fNear := in.Force(n, []*graph.Node{n, near}, graph.NewEdgeSet())

	// Pushes away from the other node
	assert.Less(t, fFar.X, 0.0)
	assert.InDelta(t, 50, fFar.Len(), 1e-9)
	assert.InDelta(t, 100, fNear.Len(), 1e-9)
	assert.GreaterOrEqual(t, fNear.Len()/fFar.Len(), 2.0-1e-9)
}

func TestForce_BondAttraction(t *testing.T) {
	in := NewIntegrator(DefaultParams())
	n, m := pair(vec.New(0, 0), vec.New(100, 0))
	edges := graph.NewEdgeSet()
	edges.Add(&graph.Edge{A: m.ID, B: n.ID, Kind: graph.Covalent, Strength: 1})

	// attraction 100*1*log10(100) = 200, repulsion 10000/100 = 100
	f := in.Force(n, []*graph.Node{n, m}, edges)
	assert.InDelta(t, 100, f.X, 1e-9)
	assert.InDelta(t, 0, f.Y, 1e-9)
}

func TestForce_CoincidentNodesStayFinite(t *testing.T) {
	in := NewIntegrator(DefaultParams())
	n, m := pair(vec.New(5, 5), vec.New(5, 5))
	nodes := []*graph.Node{n, m}

	fn := in.Force(n, nodes, graph.NewEdgeSet())
	fm := in.Force(m, nodes, graph.NewEdgeSet())
	assert.True(t, fn.IsFinite())
	assert.True(t, fm.IsFinite())
	assert.NotEqual(t, vec.Zero, fn)
	assert.Equal(t, fn, fm.Neg(), "split in opposite directions")

	in.Step(nodes, graph.NewEdgeSet(), graph.NoNode, 0.016)
	assert.True(t, n.Position.IsFinite())
	assert.True(t, m.Position.IsFinite())
	assert.NotEqual(t, n.Position, m.Position)
}

func TestStep_SingleNodeBlends(t *testing.T) {
	in := NewIntegrator(DefaultParams())
	n := graph.NewNode(nil, vec.New(100, 0))

	in.Step([]*graph.Node{n}, graph.NewEdgeSet(), graph.NoNode, 0.1)

	// centering factor 0.2/sqrt(100) = 0.02, damping 0.5 + 0.001
	assert.InDelta(t, -2*(1-0.501), n.Velocity.X, 1e-12)
	assert.InDelta(t, 100+(-0.998/2*100)*0.1, n.Position.X, 1e-9)
	assert.Equal(t, vec.New(100, 0), n.PrevPosition)
}

func TestStep_RestingAtOrigin(t *testing.T) {
	in := NewIntegrator(DefaultParams())
	n := graph.NewNode(nil, vec.Zero)

	in.Step([]*graph.Node{n}, graph.NewEdgeSet(), graph.NoNode, 0.1)
	assert.Equal(t, vec.Zero, n.Velocity)
	assert.Equal(t, vec.Zero, n.Position)
}

func TestStep_SkipsDraggedNode(t *testing.T) {
	in := NewIntegrator(DefaultParams())
	dragged, free := pair(vec.New(0, 0), vec.New(30, 0))
	nodes := []*graph.Node{dragged, free}

	in.Step(nodes, graph.NewEdgeSet(), dragged.ID, 0.1)

	assert.Equal(t, vec.Zero, dragged.Position)
	assert.Equal(t, vec.Zero, dragged.Velocity)
	assert.Greater(t, free.Position.X, 30.0, "free node pushed away by the dragged one")
}

func TestVelocity_DeadZone(t *testing.T) {
	in := NewIntegrator(DefaultParams())
	pos := vec.New(1e6, 0)

	small := in.Velocity(vec.Zero, pos, vec.New(0.5, 0.5))
	none := in.Velocity(vec.Zero, pos, vec.Zero)
	assert.Equal(t, none, small)

	big := in.Velocity(vec.Zero, pos, vec.New(0, 100))
	assert.Greater(t, big.Y, 0.0)
}

func TestVelocity_DampingBounded(t *testing.T) {
	p := DefaultParams()
	p.Centering = 0
	in := NewIntegrator(p)

	// Far away the damping factor saturates at 0.75
	v := in.Velocity(vec.New(100, 0), vec.New(1e9, 0), vec.Zero)
	assert.InDelta(t, 25, v.X, 1e-9)
}

func TestIntegrate_ClampsAcceleration(t *testing.T) {
	in := NewIntegrator(DefaultParams())
	n := graph.NewNode(nil, vec.New(10, 10))
	n.Velocity = vec.New(1000, -1000)

	in.Integrate(n, 0.1)

	require.Equal(t, vec.New(10, 10), n.PrevPosition)
	assert.InDelta(t, 10+5000*0.1, n.Position.X, 1e-9)
	assert.InDelta(t, 10-5000*0.1, n.Position.Y, 1e-9)
}
