// Package background simulates the drifting node network drawn behind the
// portfolio: nodes bounce around a rectangle and nearby pairs are linked.
package background

import (
	"math"

	"github.com/vytor/funzone/internal/rng"
)

type Options struct {
	Nodes       int
	Speed       float64
	MinRadius   float64
	MaxRadius   float64
	MaxDistance float64
}

func DefaultOptions() Options {
	return Options{Nodes: 50, Speed: 0.5, MinRadius: 1, MaxRadius: 4, MaxDistance: 150}
}

type Node struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"r"`
}

// Connection links nodes A and B; Opacity fades with distance.
type Connection struct {
	A       int     `json:"a"`
	B       int     `json:"b"`
	Opacity float64 `json:"o"`
}

type Frame struct {
	Width       float64      `json:"w"`
	Height      float64      `json:"h"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"links"`
}

// Network is not safe for concurrent use; Animator serializes access.
type Network struct {
	opts          Options
	rand          rng.Source
	width, height float64
	nodes         []Node
}

func NewNetwork(width, height float64, src rng.Source, opts Options) *Network {
	def := DefaultOptions()
	if opts.Nodes <= 0 {
		opts.Nodes = def.Nodes
	}
	if opts.Speed <= 0 {
		opts.Speed = def.Speed
	}
	if opts.MaxRadius <= 0 {
		opts.MinRadius, opts.MaxRadius = def.MinRadius, def.MaxRadius
	}
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = def.MaxDistance
	}
	n := &Network{opts: opts, rand: src}
	n.Resize(width, height)
	return n
}

// Resize changes the bounds and scatters a fresh set of nodes.
func (n *Network) Resize(width, height float64) {
	n.width, n.height = math.Max(width, 0), math.Max(height, 0)
	n.nodes = make([]Node, n.opts.Nodes)
	for i := range n.nodes {
		n.nodes[i] = Node{
			X:      n.rand.Float64() * n.width,
			Y:      n.rand.Float64() * n.height,
			VX:     (n.rand.Float64() - 0.5) * n.opts.Speed,
			VY:     (n.rand.Float64() - 0.5) * n.opts.Speed,
			Radius: n.rand.Float64()*(n.opts.MaxRadius-n.opts.MinRadius) + n.opts.MinRadius,
		}
	}
}

// Step moves every node once, reflecting and clamping at the edges.
func (n *Network) Step() {
	for i := range n.nodes {
		nd := &n.nodes[i]
		nd.X += nd.VX
		nd.Y += nd.VY
		if nd.X < 0 || nd.X > n.width {
			nd.VX = -nd.VX
			nd.X = clamp(nd.X, 0, n.width)
		}
		if nd.Y < 0 || nd.Y > n.height {
			nd.VY = -nd.VY
			nd.Y = clamp(nd.Y, 0, n.height)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Connections returns every pair closer than the maximum distance.
func (n *Network) Connections() []Connection {
	var out []Connection
	limit := n.opts.MaxDistance
	for i := 0; i < len(n.nodes); i++ {
		for j := i + 1; j < len(n.nodes); j++ {
			d := math.Hypot(n.nodes[i].X-n.nodes[j].X, n.nodes[i].Y-n.nodes[j].Y)
			if d < limit {
				out = append(out, Connection{A: i, B: j, Opacity: (1 - d/limit) * 0.3})
			}
		}
	}
	return out
}

func (n *Network) Nodes() []Node {
	return append([]Node(nil), n.nodes...)
}

func (n *Network) Frame() Frame {
	return Frame{Width: n.width, Height: n.height, Nodes: n.Nodes(), Connections: n.Connections()}
}
