package timeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/roach88/aftershock/internal/event"
	"github.com/roach88/aftershock/internal/scale"
)

// InstantFormat is how instants appear in the JSON document. Instants carry
// no zone, so none is written.
const InstantFormat = "2006-01-02T15:04:05"

type jsonDocument struct {
	Source      string           `json:"source"`
	Chart       jsonChart        `json:"chart"`
	Records     jsonRecords      `json:"records"`
	Overlaps    int              `json:"overlaps"`
	Events      []jsonEvent      `json:"events"`
	Annotations []jsonAnnotation `json:"annotations"`
}

type jsonChart struct {
	Width           float64     `json:"width"`
	Height          float64     `json:"height"`
	CenterX         float64     `json:"center_x"`
	PixelsPerMinute float64     `json:"pixels_per_minute"`
	Minutes         int         `json:"minutes"`
	Start           string      `json:"start"`
	End             string      `json:"end"`
	Radius          scale.Range `json:"radius"`
	Magnitude       jsonRange   `json:"magnitude"`
}

type jsonRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type jsonRecords struct {
	Total     int                      `json:"total"`
	Kept      int                      `json:"kept"`
	Dropped   int                      `json:"dropped"`
	DroppedBy map[event.DropReason]int `json:"dropped_by"`
}

type jsonEvent struct {
	ID        string       `json:"id"`
	Seq       int          `json:"seq"`
	Time      string       `json:"time"`
	Instant   string       `json:"instant"`
	Magnitude float64      `json:"magnitude"`
	Radius    float64      `json:"radius"`
	TargetY   float64      `json:"target_y"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Fields    event.Record `json:"fields"`
}

type jsonAnnotation struct {
	Text     string  `json:"text"`
	Side     string  `json:"side"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Y0       float64 `json:"y0"`
	Y1       float64 `json:"y1"`
	TextY    float64 `json:"text_y"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"font_size"`
}

// WriteJSON writes doc as an indented JSON layout document.
func WriteJSON(w io.Writer, doc *Document) error {
	out := jsonDocument{
		Source: doc.Source,
		Chart: jsonChart{
			Width:           doc.Chart.Width,
			Height:          doc.Chart.Height,
			CenterX:         doc.Chart.CenterX,
			PixelsPerMinute: doc.Chart.PixelsPerMinute,
			Minutes:         doc.Scale.Minutes(),
			Start:           doc.Scale.Start.Format(InstantFormat),
			End:             doc.Scale.End.Format(InstantFormat),
			Radius:          doc.Chart.RadiusRange,
			Magnitude:       jsonRange{Min: doc.Chart.MagnitudeMin, Max: doc.Chart.MagnitudeMax},
		},
		Records: jsonRecords{
			Total:   doc.Report.Total,
			Kept:    doc.Report.Kept,
			Dropped: doc.Report.Dropped(),
			DroppedBy: map[event.DropReason]int{
				event.DropTime:      doc.Report.DroppedBy(event.DropTime),
				event.DropMagnitude: doc.Report.DroppedBy(event.DropMagnitude),
			},
		},
		Overlaps:    doc.Overlaps,
		Events:      make([]jsonEvent, 0, len(doc.Events)),
		Annotations: make([]jsonAnnotation, 0, len(doc.Annotations)),
	}

	for _, e := range doc.Events {
		if e.Position == nil {
			return fmt.Errorf("event %s has no position", e.ID)
		}
		out.Events = append(out.Events, jsonEvent{
			ID:        e.ID,
			Seq:       e.Seq,
			Time:      e.RawTime,
			Instant:   e.Instant.Format(InstantFormat),
			Magnitude: e.Magnitude,
			Radius:    e.Radius,
			TargetY:   e.TargetY,
			X:         e.Position.X,
			Y:         e.Position.Y,
			Fields:    e.Fields,
		})
	}

	for _, a := range doc.Annotations {
		out.Annotations = append(out.Annotations, jsonAnnotation{
			Text:     a.Text,
			Side:     string(a.Side),
			Start:    a.Start.Format(InstantFormat),
			End:      a.End.Format(InstantFormat),
			Y0:       a.Y0,
			Y1:       a.Y1,
			TextY:    a.TextY,
			Height:   a.Height,
			FontSize: a.FontSize,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
