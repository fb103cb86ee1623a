// Package render draws a laid-out timeline as SVG.
//
// Drawing goes straight through go-chart's vector renderer: every circle is
// placed at the coordinates the layout engine produced, so no axis ranges or
// series fitting are involved.
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/roach88/aftershock/internal/annotate"
	"github.com/roach88/aftershock/internal/config"
	"github.com/roach88/aftershock/internal/reveal"
	"github.com/roach88/aftershock/internal/timeline"
)

// Style is the resolved appearance of a rendering.
type Style struct {
	Background drawing.Color
	Axis       drawing.Color
	Text       drawing.Color
	Fill       drawing.Color
	Stroke     drawing.Color

	FontSize       float64
	LabelMagnitude float64
	Margin         float64 // blank space above and below the chart
}

// NewStyle resolves configured colours. cfg is expected to be validated.
func NewStyle(cfg config.Style, margin float64) Style {
	alpha := uint8(math.Round(cfg.FillOpacity * 255))
	return Style{
		Background:     color(cfg.Background),
		Axis:           color(cfg.Axis),
		Text:           color(cfg.Text),
		Fill:           color(cfg.Fill).WithAlpha(alpha),
		Stroke:         color(cfg.Stroke),
		FontSize:       cfg.FontSize,
		LabelMagnitude: cfg.LabelMagnitude,
		Margin:         margin,
	}
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

const (
	tickLength      = 6
	annotationGap   = 36
	bracketGap      = 24
	labelGap        = 3
	glyphWidthRatio = 0.55 // average advance of the default font, in ems
)

// SVG writes doc to w.
func SVG(w io.Writer, doc *timeline.Document, style Style) error {
	width := int(math.Ceil(doc.Chart.Width))
	height := int(math.Ceil(doc.Chart.Height + 2*style.Margin))

	r, err := chart.SVG(width, height)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	r.SetFont(font)

	p := &painter{r: r, doc: doc, style: style}
	p.background(width, height)
	p.axis()
	p.ticks()
	p.events()
	p.annotations()

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return fmt.Errorf("encoding svg: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

type painter struct {
	r     chart.Renderer
	doc   *timeline.Document
	style Style
}

// y converts a chart y to a canvas y.
func (p *painter) y(chartY float64) int {
	return int(math.Round(chartY + p.style.Margin))
}

func (p *painter) background(width, height int) {
	p.r.SetFillColor(p.style.Background)
	p.r.SetStrokeColor(drawing.ColorTransparent)
	p.r.SetStrokeWidth(0)
	p.r.MoveTo(0, 0)
	p.r.LineTo(width, 0)
	p.r.LineTo(width, height)
	p.r.LineTo(0, height)
	p.r.Close()
	p.r.Fill()
}

func (p *painter) axis() {
	cx := int(math.Round(p.doc.Chart.CenterX))
	p.r.SetStrokeColor(p.style.Axis)
	p.r.SetStrokeWidth(1)
	p.r.MoveTo(cx, p.y(0))
	p.r.LineTo(cx, p.y(p.doc.Chart.Height))
	p.r.Stroke()
}

// ticks marks every whole hour since the first event.
func (p *painter) ticks() {
	cx := int(math.Round(p.doc.Chart.CenterX))
	ts := p.doc.Scale
	p.r.SetFontSize(p.style.FontSize)
	p.r.SetFontColor(p.style.Text)

	for at := ts.Start; !at.After(ts.End); at = at.Add(time.Hour) {
		y := p.y(ts.Map(at))
		p.r.SetStrokeColor(p.style.Axis)
		p.r.SetStrokeWidth(1)
		p.r.MoveTo(cx-tickLength, y)
		p.r.LineTo(cx+tickLength, y)
		p.r.Stroke()

		label := reveal.ElapsedLabel(at.Sub(ts.Start))
		p.text(label, cx-tickLength-labelGap-p.textWidth(label, p.style.FontSize), y+int(p.style.FontSize/3))
	}
}

func (p *painter) events() {
	for _, e := range p.doc.Events {
		if e.Position == nil {
			continue
		}
		x := int(math.Round(e.Position.X))
		y := p.y(e.Position.Y)

		p.r.SetFillColor(p.style.Fill)
		p.r.SetStrokeColor(p.style.Stroke)
		p.r.SetStrokeWidth(1)
		p.r.Circle(e.Radius, x, y)

		if e.Magnitude >= p.style.LabelMagnitude {
			p.r.SetFontSize(p.style.FontSize)
			p.r.SetFontColor(p.style.Text)
			p.text(fmt.Sprintf("M%.1f", e.Magnitude), x+int(math.Ceil(e.Radius))+labelGap, y+int(p.style.FontSize/3))
		}
	}
}

func (p *painter) annotations() {
	cx := p.doc.Chart.CenterX
	for _, a := range p.doc.Annotations {
		bx, tx := cx+bracketGap, cx+annotationGap
		if a.Side == annotate.SideLeft {
			bx = cx - bracketGap
			tx = cx - annotationGap - float64(p.textWidth(a.Text, a.FontSize))
		}

		if a.Height > 0 {
			p.r.SetStrokeColor(p.style.Axis)
			p.r.SetStrokeWidth(1)
			p.r.MoveTo(int(math.Round(bx)), p.y(a.Y0))
			p.r.LineTo(int(math.Round(bx)), p.y(a.Y0+a.Height))
			p.r.Stroke()
		}

		p.r.SetFontSize(a.FontSize)
		p.r.SetFontColor(p.style.Text)
		p.text(a.Text, int(math.Round(tx)), p.y(a.TextY)+int(a.FontSize/3))
	}
}

// text draws body after escaping it; the vector renderer writes text nodes
// verbatim.
func (p *painter) text(body string, x, y int) {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(body))
	p.r.Text(b.String(), x, y)
}

func (p *painter) textWidth(body string, fontSize float64) int {
	return int(math.Ceil(float64(len([]rune(body))) * fontSize * glyphWidthRatio))
}
