// Package annotate loads the static annotation overlay of a timeline and
// positions it with the same time scale as the events.
//
// Annotations are written in CUE and validated against an embedded schema.
// They never take part in the layout relaxation.
package annotate

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/aftershock/internal/event"
)

//go:embed schema.cue
var schemaSource string

// Side is the side of the time axis an annotation is drawn on.
type Side string

const (
	SideRight Side = "right"
	SideLeft  Side = "left"
)

// Options are the per-annotation layout hints.
type Options struct {
	FontSize     float64 // text size on the right side
	LeftFontSize float64 // text size on the left side
	OffsetY      float64 // shift of the text anchor from the start position
	Height       float64 // bracket height; 0 means the start-to-end span
}

// DefaultOptions returns the hints applied when a field is not set.
func DefaultOptions() Options {
	return Options{FontSize: 14, LeftFontSize: 12}
}

// Annotation is one entry of the overlay.
type Annotation struct {
	Start   time.Time
	End     time.Time
	Text    string
	Side    Side
	Options Options
}

// Error is a schema or content error with its CUE source position.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and compiles an annotation file.
func Load(path string) ([]Annotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Field: "file", Message: err.Error()}
	}
	return Compile(path, data)
}

// Compile validates CUE source against the overlay schema and returns the
// annotations in declaration order. A source without an annotations list
// yields an empty result.
func Compile(filename string, src []byte) ([]Annotation, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v = schema.Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	listVal := v.LookupPath(cue.ParsePath("annotations"))
	if !listVal.Exists() {
		return nil, nil
	}
	iter, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var out []Annotation
	for iter.Next() {
		ann, err := compileAnnotation(iter.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, ann)
	}
	return out, nil
}

func compileAnnotation(v cue.Value) (Annotation, error) {
	ann := Annotation{Options: DefaultOptions()}

	text, err := v.LookupPath(cue.ParsePath("text")).String()
	if err != nil {
		return ann, formatCUEError(err)
	}
	ann.Text = text

	startVal := v.LookupPath(cue.ParsePath("start"))
	ann.Start, err = instantField(startVal, "start")
	if err != nil {
		return ann, err
	}

	ann.End = ann.Start
	if endVal := v.LookupPath(cue.ParsePath("end")); endVal.Exists() {
		ann.End, err = instantField(endVal, "end")
		if err != nil {
			return ann, err
		}
		if ann.End.Before(ann.Start) {
			return ann, &Error{Field: "end", Message: "end precedes start", Pos: endVal.Pos()}
		}
	}

	sideVal, _ := v.LookupPath(cue.ParsePath("side")).Default()
	side, err := sideVal.String()
	if err != nil {
		return ann, formatCUEError(err)
	}
	ann.Side = Side(side)

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"font_size", &ann.Options.FontSize},
		{"left_font_size", &ann.Options.LeftFontSize},
		{"offset_y", &ann.Options.OffsetY},
		{"height", &ann.Options.Height},
	} {
		fv := v.LookupPath(cue.ParsePath(f.name))
		if !fv.Exists() {
			continue
		}
		n, err := fv.Float64()
		if err != nil {
			return ann, formatCUEError(err)
		}
		*f.dst = n
	}

	return ann, nil
}

func instantField(v cue.Value, field string) (time.Time, error) {
	s, err := v.String()
	if err != nil {
		return time.Time{}, formatCUEError(err)
	}
	t, ok := event.ParseInstant(s)
	if !ok {
		return time.Time{}, &Error{
			Field:   field,
			Message: fmt.Sprintf("%q is not a catalog time (want e.g. %q)", s, "10 Oct 2025 - 5:14 PM"),
			Pos:     v.Pos(),
		}
	}
	return t, nil
}

// formatCUEError keeps the first CUE error together with its position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return &Error{Field: "cue", Message: first.Error()}
}
