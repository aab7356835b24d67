/*
   Copyright 2021 Google LLC

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       https://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package rotaryknob

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/vector"
)

const (
	// LabelHeight is the height of the name label above the knob
	// and of the value field below it.
	LabelHeight = 20
	// LabelFontSize is the font size used for the name label and
	// value field.
	LabelFontSize = 12
	// KnobFontSize is the font size of the value drawn inside the
	// dial, before oversampling is undone.
	KnobFontSize = 28
	// ScaleTicks is the number of intervals between scale marks.
	ScaleTicks = 10
)

// tristateReadout replaces the value of an indeterminate knob.
const tristateReadout = "---"

// ErrEmptyCanvas is returned when a knob has no area to draw into.
var ErrEmptyCanvas = errors.New("knob canvas has no area")

// Theme holds the colors used to draw a knob.
type Theme struct {
	Background color.RGBA
	Scale      color.RGBA
	KnobOuter  color.RGBA
	KnobInner  color.RGBA
	KnobCenter color.RGBA
	Marker     color.RGBA
	Label      color.RGBA
}

// DefaultTheme is a dark theme.
var DefaultTheme = Theme{
	Background: color.RGBA{51, 51, 51, 255},
	Scale:      color.RGBA{28, 28, 28, 255},
	KnobOuter:  color.RGBA{28, 28, 28, 255},
	KnobInner:  color.RGBA{40, 40, 40, 255},
	KnobCenter: color.RGBA{192, 192, 192, 255},
	Marker:     color.RGBA{192, 192, 192, 255},
	Label:      color.RGBA{220, 220, 220, 255},
}

// embossed returns a flattened version of the theme, used to show a
// tristate value.
func (t Theme) embossed() Theme {
	flat := func(c color.RGBA) color.RGBA {
		g := uint8((uint16(c.R) + uint16(c.G) + uint16(c.B)) / 3)
		g = uint8((uint16(g) + uint16(t.Background.R)) / 2)
		return color.RGBA{g, g, g, c.A}
	}
	return Theme{
		Background: t.Background,
		Scale:      flat(t.Scale),
		KnobOuter:  flat(t.KnobOuter),
		KnobInner:  flat(t.KnobInner),
		KnobCenter: flat(t.KnobCenter),
		Marker:     flat(t.Marker),
		Label:      flat(t.Label),
	}
}

// Renderer draws knobs into images.  It is oversampled: everything is
// drawn Oversampling times larger and then scaled down.
type Renderer struct {
	Theme Theme
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewRenderer creates a Renderer using the Go Regular font.
func NewRenderer() (*Renderer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("unable to parse default font: %w", err)
	}
	return &Renderer{
		Theme: DefaultTheme,
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// face returns a font.Face of the given pixel size, caching it.
func (r *Renderer) face(size float64) (font.Face, error) {
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create %.1fpx font face: %w", size, err)
	}
	r.faces[size] = f
	return f, nil
}

// knobGeometry holds the oversampled measurements of a knob's dial.
type knobGeometry struct {
	size         float64 // width and height of the dial
	cx, cy       float64 // center of the dial
	margin       float64
	radius       float64
	markerLength float64
	markerWidth  float64
}

func newKnobGeometry(size, yoff int) knobGeometry {
	s := float64(size * Oversampling)
	half := s / 2
	margin := s * AreaMargin / AreaWidth
	radius := half - margin
	return knobGeometry{
		size:         s,
		cx:           half,
		cy:           half + float64(yoff*Oversampling),
		margin:       margin,
		radius:       radius,
		markerLength: radius * 0.8,
		markerWidth:  margin * 0.6,
	}
}

// Render draws k and returns the result, at the size reported by
// k.MinSize.
func (r *Renderer) Render(k *Knob) (*image.RGBA, error) {
	w, h := k.MinSize()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyCanvas
	}
	props := k.Properties()
	theme := r.Theme
	if k.Tristate() {
		theme = theme.embossed()
	}
	ratio := float64(props.Size) / AreaWidth

	im := image.NewRGBA(image.Rect(0, 0, w*Oversampling, h*Oversampling))
	draw.Draw(im, im.Bounds(), &image.Uniform{theme.Background}, image.Point{}, draw.Src)

	g := newKnobGeometry(props.Size, k.knobOffset())
	labelFace, err := r.face(LabelFontSize * Oversampling * ratio)
	if err != nil {
		return nil, err
	}

	if !props.HideName {
		fd := &font.Drawer{Dst: im, Src: &image.Uniform{theme.Label}, Face: labelFace}
		drawCenteredStringAt(fd, props.Name, int(g.cx), LabelHeight*Oversampling/2)
	}

	z := vector.NewRasterizer(im.Bounds().Dx(), im.Bounds().Dy())
	scale := k.Scale()

	// Scale marks.  Every second mark is shorter; the knob itself
	// covers their inner ends.
	for i, a := range scale.Ticks(ScaleTicks) {
		length := g.radius * 1.1
		if i%2 == 1 {
			length = g.radius * 1.05
		}
		x, y := scale.Offset(a, length)
		fillLine(z, im, g.cx, g.cy, g.cx+x, g.cy+y, float64(Oversampling), theme.Scale)
	}

	fillCircle(z, im, g.cx, g.cy, g.radius, theme.KnobOuter)
	fillCircle(z, im, g.cx, g.cy, g.size/2-g.margin*1.15, theme.KnobInner)
	fillCircle(z, im, g.cx, g.cy, g.margin, theme.KnobCenter)

	// Marker: a triangle with its base across the center of the
	// knob, pointing at the current value.
	a := scale.Angle(k.Get(), props.Min, props.Max)
	bx, by := math.Cos(a)*g.markerWidth, math.Sin(a)*g.markerWidth
	tx, ty := scale.Offset(a, g.markerLength)
	fillPolygon(z, im, theme.Marker,
		g.cx+bx, g.cy+by,
		g.cx-bx, g.cy-by,
		g.cx+tx, g.cy+ty)

	if !props.HideValue {
		label := FormatValue(k.Get())
		if k.Tristate() {
			label = tristateReadout
		}
		if props.ValueInKnob {
			knobFace, err := r.face(KnobFontSize * ratio)
			if err != nil {
				return nil, err
			}
			fd := &font.Drawer{Dst: im, Src: &image.Uniform{theme.Label}, Face: knobFace}
			drawCenteredStringAt(fd, label, int(g.cx), int(g.cy+g.size/4))
		} else {
			fd := &font.Drawer{Dst: im, Src: &image.Uniform{theme.Label}, Face: labelFace}
			y := int(g.cy + g.size/2 + LabelHeight*Oversampling/2)
			drawCenteredStringAt(fd, label, int(g.cx), y)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), im, im.Bounds(), xdraw.Src, nil)
	return out, nil
}

// drawCenteredStringAt draws s centered horizontally on x and
// vertically on y.
func drawCenteredStringAt(fd *font.Drawer, s string, x, y int) {
	width := fd.MeasureString(s).Round()
	m := fd.Face.Metrics()
	baseline := y + (m.Ascent.Round()-m.Descent.Round())/2
	fd.Dot = freetype.Pt(x-width/2, baseline)
	fd.DrawString(s)
}

func fillPolygon(z *vector.Rasterizer, dst draw.Image, c color.Color, xy ...float64) {
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(xy[0]), float32(xy[1]))
	for i := 2; i+1 < len(xy); i += 2 {
		z.LineTo(float32(xy[i]), float32(xy[i+1]))
	}
	z.ClosePath()
	z.Draw(dst, b, &image.Uniform{c}, image.Point{})
}

func fillCircle(z *vector.Rasterizer, dst draw.Image, cx, cy, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	const segments = 64
	xy := make([]float64, 0, segments*2)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		xy = append(xy, cx+math.Cos(a)*radius, cy+math.Sin(a)*radius)
	}
	fillPolygon(z, dst, c, xy...)
}

// fillLine draws a line of the given width as a filled quad.
func fillLine(z *vector.Rasterizer, dst draw.Image, x1, y1, x2, y2, width float64, c color.Color) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	fillPolygon(z, dst, c,
		x1+nx, y1+ny,
		x2+nx, y2+ny,
		x2-nx, y2-ny,
		x1-nx, y1-ny)
}
