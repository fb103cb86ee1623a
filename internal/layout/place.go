package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/aftershock/internal/event"
	"github.com/roach88/aftershock/internal/scale"
)

var (
	// ErrEmpty is returned when Place is called without events. Callers are
	// expected to report an empty dataset before building any scale.
	ErrEmpty = errors.New("layout: no events to place")

	// ErrUnsorted is returned when events are not in ascending instant order.
	ErrUnsorted = errors.New("layout: events are not sorted by instant")
)

// RadiusFunc maps a magnitude to a circle radius in pixels.
type RadiusFunc func(magnitude float64) float64

// Params are the inputs of Place besides the events themselves.
type Params struct {
	// Time places each event vertically; its Height is the chart height.
	Time scale.Time

	// CenterX is the line every circle is pulled toward.
	CenterX float64

	Radius RadiusFunc

	// Options tunes the relaxation. A zero value means DefaultOptions();
	// unusable fields of a partial value fall back one by one (see
	// Options.withDefaults).
	Options Options
}

// Place computes a position for every event.
//
// Step A sets TargetY from the time scale, exactly. Step B relaxes the
// horizontal spread with Run, starting each circle at (CenterX, TargetY).
// The input slice is not modified; the returned slice holds copies with
// TargetY, Radius and Position set.
func Place(events []event.Event, p Params) ([]event.Event, error) {
	if len(events) == 0 {
		return nil, ErrEmpty
	}
	if p.Radius == nil {
		return nil, errors.New("layout: radius function is required")
	}
	for i := 1; i < len(events); i++ {
		if events[i].Instant.Before(events[i-1].Instant) {
			return nil, fmt.Errorf("%w: event %d precedes event %d", ErrUnsorted, i, i-1)
		}
	}

	opts := p.Options.withDefaults()

	nodes := make([]Node, len(events))
	for i, e := range events {
		ty := p.Time.Map(e.Instant)
		r := p.Radius(e.Magnitude)
		if math.IsNaN(r) || r < 0 {
			return nil, fmt.Errorf("layout: invalid radius %v for magnitude %v", r, e.Magnitude)
		}
		nodes[i] = Node{
			X:       p.CenterX,
			Y:       ty,
			R:       r,
			TargetX: p.CenterX,
			TargetY: ty,
		}
	}

	Run(nodes, opts)

	out := make([]event.Event, len(events))
	for i, e := range events {
		n := nodes[i]
		e.TargetY = n.TargetY
		e.Radius = n.R
		e.Position = &event.Position{X: n.X, Y: n.Y}
		out[i] = e
	}
	return out, nil
}

// Overlaps counts node pairs whose centres are closer than the sum of their
// radii. Padding is not included.
func Overlaps(nodes []Node) int {
	count := 0
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			dx := nodes[i].X - nodes[j].X
			dy := nodes[i].Y - nodes[j].Y
			r := nodes[i].R + nodes[j].R
			if dx*dx+dy*dy < r*r {
				count++
			}
		}
	}
	return count
}

// NodesOf returns the relaxed state of placed events. Events without a
// position are skipped.
func NodesOf(events []event.Event) []Node {
	nodes := make([]Node, 0, len(events))
	for _, e := range events {
		if e.Position == nil {
			continue
		}
		nodes = append(nodes, Node{
			X:       e.Position.X,
			Y:       e.Position.Y,
			R:       e.Radius,
			TargetX: e.Position.X,
			TargetY: e.TargetY,
		})
	}
	return nodes
}
