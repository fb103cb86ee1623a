// Package timeline assembles a laid-out aftershock timeline from a catalog
// source.
//
// Build runs the whole pipeline in one pass:
//
//	fetch → normalize → empty guard → time scale → radius scale → layout → annotations
//
// The resulting Document is read-only. It is written as JSON by WriteJSON,
// drawn by package render and queried by package reveal.
package timeline
