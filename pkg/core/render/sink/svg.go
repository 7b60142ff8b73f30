package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/model"
)

// DefaultPalette colors words without an explicit color, by render index.
var DefaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

const hoverCSS = `
    .word { transition: opacity 0.2s ease; cursor: default; }
    .cloud:hover .word { opacity: 0.55; }
    .cloud .word:hover { opacity: 1; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette    []string
	background string
	showBoxes  bool
	embedFont  bool
	hover      bool
	titles     bool
}

// WithPalette colors words without their own color by index. An empty
// palette keeps the default.
func WithPalette(colors ...string) SVGOption {
	return func(r *svgRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }
func WithBoxes() SVGOption                  { return func(r *svgRenderer) { r.showBoxes = true } }
func WithEmbeddedFont() SVGOption           { return func(r *svgRenderer) { r.embedFont = true } }
func WithHover() SVGOption                  { return func(r *svgRenderer) { r.hover = true } }

// WithTitles adds a <title> with the word value, shown as a tooltip by browsers.
func WithTitles() SVGOption { return func(r *svgRenderer) { r.titles = true } }

// RenderSVG draws every placed word as a centered, rotated <text> element.
func RenderSVG(l model.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	r.renderDefs(&buf)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(r.background))
	}

	family := fonts.FontFamily + ", " + fonts.FallbackFontFamily
	fmt.Fprintf(&buf, `  <g class="cloud" font-family="%s" text-anchor="middle" dominant-baseline="central">`+"\n", family)
	for i, w := range l.Words {
		r.renderWord(&buf, i, w)
	}
	buf.WriteString("  </g>\n")

	if r.showBoxes {
		renderBoxes(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: DefaultPalette}
	for _, opt := range opts {
		opt(&r)
	}
	if len(r.palette) == 0 {
		r.palette = DefaultPalette
	}
	return r
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer) {
	if !r.embedFont && !r.hover {
		return
	}
	buf.WriteString("  <defs>\n    <style>")
	if r.embedFont {
		fmt.Fprintf(buf, "\n    @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
			fonts.FontFamily, fonts.TTFBase64())
	}
	if r.hover {
		buf.WriteString(hoverCSS)
	}
	buf.WriteString("\n    </style>\n  </defs>\n")
}

func (r *svgRenderer) renderWord(buf *bytes.Buffer, i int, w model.PlacedWord) {
	color := w.Color
	if color == "" {
		color = r.palette[i%len(r.palette)]
	}
	fmt.Fprintf(buf, `    <text class="word" x="%.2f" y="%.2f" font-size="%.2f" fill="%s"`,
		w.X, w.Y, w.FontSize, EscapeXML(color))
	if w.Rotation != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%.2f %.2f %.2f)"`, w.Rotation, w.X, w.Y)
	}
	buf.WriteString(">")
	if r.titles {
		fmt.Fprintf(buf, "<title>%s: %g</title>", EscapeXML(w.Text), w.Value)
	}
	buf.WriteString(EscapeXML(w.Text))
	buf.WriteString("</text>\n")
}

// renderBoxes overlays the padded footprints and the placement margin.
func renderBoxes(buf *bytes.Buffer, l model.Layout) {
	buf.WriteString(`  <g class="debug" fill="none" stroke="#e11d48" stroke-width="1">` + "\n")
	if l.Margin > 0 {
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" stroke-dasharray="4 4"/>`+"\n",
			l.Margin, l.Margin, l.Width-2*l.Margin, l.Height-2*l.Margin)
	}
	for _, w := range l.Words {
		pts := make([]string, len(w.Box))
		for i, p := range w.Box {
			pts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
		}
		fmt.Fprintf(buf, `    <polygon points="%s"/>`+"\n", strings.Join(pts, " "))
	}
	buf.WriteString("  </g>\n")
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
