package annotate

import "github.com/roach88/aftershock/internal/scale"

// Placed is an annotation resolved to chart coordinates.
type Placed struct {
	Annotation
	Y0       float64 // start of the bracket
	Y1       float64 // end of the bracket
	TextY    float64 // text anchor, Y0 shifted by OffsetY
	Height   float64
	FontSize float64
}

// Place maps annotations through the time scale. The input order is kept.
func Place(anns []Annotation, ts scale.Time) []Placed {
	out := make([]Placed, len(anns))
	for i, a := range anns {
		p := Placed{
			Annotation: a,
			Y0:         ts.Map(a.Start),
			Y1:         ts.Map(a.End),
			FontSize:   a.Options.FontSize,
		}
		p.TextY = p.Y0 + a.Options.OffsetY
		p.Height = p.Y1 - p.Y0
		if a.Options.Height > 0 {
			p.Height = a.Options.Height
		}
		if a.Side == SideLeft {
			p.FontSize = a.Options.LeftFontSize
		}
		out[i] = p
	}
	return out
}
