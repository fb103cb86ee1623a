// Package layout implements the aftershock beeswarm layout engine.
//
// The vertical coordinate of every event is fixed by the time scale. The
// horizontal coordinate comes from an iterative force relaxation over an
// explicit array of circle states.
//
// RELAXATION:
//
// Every node starts at (centerX, targetY) with zero velocity. Each tick:
//  1. alpha decays toward zero so that it reaches AlphaMin after Iterations ticks
//  2. a weak force pulls x toward centerX (XStrength * alpha)
//  3. a strong force pulls y toward targetY (YStrength * alpha)
//  4. overlapping circles (radius + Padding) are pushed apart along the line
//     between their centres; the push is split by squared radius so larger
//     circles move less; this force is not scaled by alpha
//  5. velocities decay by VelocityDecay and are added to positions
//
// The tick count is fixed. There is no convergence check and no
// cancellation; a run always performs exactly Options.Iterations ticks.
//
// DETERMINISM:
//
// No goroutines, no map iteration, no wall-clock input. Coincident centres
// are separated with a fixed-seed generator, so the same input always yields
// bit-identical positions.
package layout
