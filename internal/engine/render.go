package engine

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/olivierh59500/bondgraph-go/internal/graph"
	"github.com/olivierh59500/bondgraph-go/internal/profile"
	"github.com/olivierh59500/bondgraph-go/internal/vec"
)

// Render constants
const (
	BondWidth      = 10.0 // Bond line width at scale 1 and strength 1
	BondHueSpan    = 5.0  // World units per hue degree
	LabelMinScale  = 0.5
	LabelFontSize  = 16.0
	LabelOffset    = 8.0
	HUDFontSize    = 10.0
	HUDLineSpacing = 10.0
)

var (
	nodeColor = color.RGBA{0, 0, 255, 255}
	textColor = color.RGBA{255, 255, 255, 255}
	hudOrigin = vec.New(10, 30)
	infoTop   = vec.New(10, 50)
)

// Render draws the current state onto the bound canvas: bonds, nodes with
// labels, the frame rate line and the hovered profile.
func (e *Engine) Render() {
	if !e.alive || e.canvas == nil {
		return
	}
	c := e.canvas
	c.Clear(e.width, e.height)

	byID := make(map[graph.NodeID]*graph.Node, len(e.nodes))
	for _, n := range e.nodes {
		byID[n.ID] = n
	}

	scale := e.cam.Scale
	for _, edge := range e.edges.Edges() {
		a, b := byID[edge.A], byID[edge.B]
		if a == nil || b == nil {
			continue
		}
		sa := e.cam.WorldToScreen(a.Position)
		sb := e.cam.WorldToScreen(b.Position)
		hue := sa.Dist(sb) / scale / BondHueSpan
		c.DrawLine(sa, sb, hueColor(hue), BondWidth*scale*edge.Strength)
	}

	for _, n := range e.nodes {
		center := e.cam.WorldToScreen(n.Position)
		c.DrawCircle(center, n.AnimatedRadius()*scale, nodeColor)
		if scale >= LabelMinScale {
			c.DrawText(n.Profile.FirstName(), center.Add(vec.New(0, LabelOffset*scale)),
				Font{Size: LabelFontSize * scale, Align: AlignCenter}, textColor)
		}
	}

	fps := 0.0
	if e.dt > 0 {
		fps = 1 / e.dt
	}
	hud := fmt.Sprintf("FPS: %d  |  AvFps: %d  |  %d", int(math.Round(fps)), int(math.Round(e.avgFPS)), len(e.nodes))
	c.DrawText(hud, hudOrigin, Font{Size: HUDFontSize}, textColor)

	if n := byID[e.hovered]; n != nil {
		e.renderInfo(n, byID)
	}
}

// renderInfo lists the hovered profile, each of its bonds with the score
// breakdown against that peer, and its friends when the provider knows them.
func (e *Engine) renderInfo(n *graph.Node, byID map[graph.NodeID]*graph.Node) {
	row := 0
	line := func(s string, c color.Color) {
		pos := infoTop.Add(vec.New(0, HUDLineSpacing*float64(row)))
		e.canvas.DrawText(s, pos, Font{Size: HUDFontSize}, c)
		row++
	}

	for _, s := range n.Profile.Summary() {
		line(s, textColor)
	}

	for _, id := range e.edges.Neighbors(n.ID) {
		peer := byID[id]
		edge, ok := e.edges.Lookup(n.ID, id)
		if peer == nil || !ok {
			continue
		}
		b := e.scorer.Breakdown(n.Profile, peer.Profile)
		line(fmt.Sprintf("%s %s  score %.3f  history %.2f  social %.2f  location %.2f  demographics %.2f",
			edge.Kind, nameOf(peer.Profile), b.Final, b.History, b.Social, b.Location, b.Demographics),
			edge.Kind.Color())
	}

	fr, ok := e.provider.(profile.FriendResolver)
	if !ok {
		return
	}
	friends := fr.Friends(n.Profile)
	if len(friends) == 0 {
		return
	}
	names := make([]string, len(friends))
	for i, f := range friends {
		names[i] = nameOf(f)
	}
	line("friends: "+strings.Join(names, ", "), textColor)
}

func nameOf(p *profile.Profile) string {
	if p == nil {
		return ""
	}
	return p.Name
}

// hueColor returns the fully saturated colour at hue degrees.
func hueColor(hue float64) color.RGBA {
	r, g, b := hsvToRGB(hue, 1, 1)
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
