package layout

import (
	"math"
	"sort"
)

// Options tunes the relaxation.
type Options struct {
	Iterations    int     `yaml:"iterations" json:"iterations"`
	Padding       float64 `yaml:"padding" json:"padding"`
	XStrength     float64 `yaml:"x_strength" json:"x_strength"`
	YStrength     float64 `yaml:"y_strength" json:"y_strength"`
	VelocityDecay float64 `yaml:"velocity_decay" json:"velocity_decay"`
	AlphaMin      float64 `yaml:"alpha_min" json:"alpha_min"`
}

// DefaultOptions returns the tuning used for aftershock catalogs of a few
// hundred events.
func DefaultOptions() Options {
	return Options{
		Iterations:    300,
		Padding:       1.5,
		XStrength:     0.1,
		YStrength:     1.0,
		VelocityDecay: 0.4,
		AlphaMin:      0.001,
	}
}

// withDefaults returns DefaultOptions() for a zero Options. Otherwise it
// replaces only the fields that cannot drive a relaxation: non-positive
// Iterations or strengths, and an AlphaMin outside (0, 1). Zero Padding and
// zero VelocityDecay are kept as given.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o == (Options{}) {
		return d
	}
	if o.Iterations <= 0 {
		o.Iterations = d.Iterations
	}
	if o.XStrength <= 0 {
		o.XStrength = d.XStrength
	}
	if o.YStrength <= 0 {
		o.YStrength = d.YStrength
	}
	if o.AlphaMin <= 0 || o.AlphaMin >= 1 {
		o.AlphaMin = d.AlphaMin
	}
	return o
}

// Node is the mutable state of one circle.
type Node struct {
	X, Y    float64
	VX, VY  float64
	R       float64
	TargetX float64
	TargetY float64
}

// Run relaxes nodes in place for exactly opts.Iterations ticks.
// Callers set X, Y, R and the targets; velocities are normally zero.
func Run(nodes []Node, opts Options) {
	if len(nodes) == 0 || opts.Iterations <= 0 {
		return
	}
	s := newSimulation(nodes, opts)
	for i := 0; i < opts.Iterations; i++ {
		s.tick()
	}
}

type simulation struct {
	nodes      []Node
	opts       Options
	alpha      float64
	alphaDecay float64
	maxR       float64
	rand       lcg

	// broad-phase scratch, reused across ticks
	order []int
	keys  []float64
}

func newSimulation(nodes []Node, opts Options) *simulation {
	alphaMin := opts.AlphaMin
	if alphaMin <= 0 || alphaMin >= 1 {
		alphaMin = DefaultOptions().AlphaMin
	}
	s := &simulation{
		nodes:      nodes,
		opts:       opts,
		alpha:      1,
		alphaDecay: 1 - math.Pow(alphaMin, 1/float64(opts.Iterations)),
		rand:       newLCG(),
		order:      make([]int, len(nodes)),
		keys:       make([]float64, len(nodes)),
	}
	for i := range nodes {
		s.order[i] = i
		s.maxR = math.Max(s.maxR, nodes[i].R)
	}
	return s
}

func (s *simulation) tick() {
	s.alpha += (0 - s.alpha) * s.alphaDecay

	for i := range s.nodes {
		n := &s.nodes[i]
		n.VX += (n.TargetX - n.X) * s.opts.XStrength * s.alpha
		n.VY += (n.TargetY - n.Y) * s.opts.YStrength * s.alpha
	}

	s.collide()

	keep := 1 - s.opts.VelocityDecay
	for i := range s.nodes {
		n := &s.nodes[i]
		n.VX *= keep
		n.X += n.VX
		n.VY *= keep
		n.Y += n.VY
	}
}

// collide resolves overlaps between predicted positions (position plus
// velocity). Candidate pairs come from a sweep over nodes sorted by predicted
// y; each unordered pair is visited at most once per tick.
func (s *simulation) collide() {
	pad := s.opts.Padding
	for i := range s.nodes {
		s.keys[i] = s.nodes[i].Y + s.nodes[i].VY
	}
	sort.SliceStable(s.order, func(a, b int) bool {
		return s.keys[s.order[a]] < s.keys[s.order[b]]
	})

	// Velocities change during the pass, so the sweep window carries one
	// extra radius of slack over the largest possible contact distance.
	reach := 2*(s.maxR+pad) + s.maxR

	for a, i := range s.order {
		ni := &s.nodes[i]
		ri := ni.R + pad
		ri2 := ri * ri
		xi := ni.X + ni.VX
		yi := ni.Y + ni.VY

		for _, j := range s.order[a+1:] {
			if s.keys[j]-s.keys[i] > reach {
				break
			}
			nj := &s.nodes[j]
			rj := nj.R + pad
			r := ri + rj

			x := xi - nj.X - nj.VX
			y := yi - nj.Y - nj.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = s.rand.jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.rand.jiggle()
				l += y * y
			}
			l = math.Sqrt(l)
			l = (r - l) / l
			x *= l
			y *= l

			w := rj * rj / (ri2 + rj*rj)
			ni.VX += x * w
			ni.VY += y * w
			nj.VX -= x * (1 - w)
			nj.VY -= y * (1 - w)
		}
	}
}

// lcg is a 32-bit linear congruential generator with a fixed seed.
type lcg struct {
	state uint32
}

func newLCG() lcg {
	return lcg{state: 1}
}

func (g *lcg) next() float64 {
	g.state = 1664525*g.state + 1013904223
	return float64(g.state) / 4294967296
}

// jiggle returns a tiny non-zero offset used to split coincident centres.
func (g *lcg) jiggle() float64 {
	return (g.next() - 0.5) * 1e-6
}
