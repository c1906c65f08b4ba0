// Package render draws choropleth maps of tract polygons to PNG.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	titleHeight = 28
	margin      = 10
)

// Ink is the color of titles, legend text, and the colorbar outline.
var Ink = drawing.ColorFromHex("333333")

// Shape is one polygon to draw and the value that picks its color.
type Shape struct {
	Geometry *geom.MultiPolygon
	Value    float64
}

// colored reports whether the shape gets a colormap fill. NaN and ±Inf
// values are left unfilled.
func (s Shape) colored() bool {
	return !math.IsNaN(s.Value) && !math.IsInf(s.Value, 0)
}

// Layer is a set of shapes drawn together. A layer with a Fill color
// draws every shape in it; otherwise shapes are colored by value through
// the viridis colormap over Scale, or over the data range when Scale is nil.
type Layer struct {
	Shapes    []Shape
	Fill      color.Color
	Edge      color.Color
	EdgeWidth float64
	Scale     *Scale
}

func (l Layer) colormap() bool { return l.Fill == nil }

// scale returns the colormap range of a colormap layer.
func (l Layer) scale() Scale {
	if l.Scale != nil {
		return *l.Scale
	}
	s, _ := FitScale(l.Shapes)
	return s
}

// Panel is one map: a title over layers drawn bottom to top, with an
// optional colorbar for the first colormap layer.
type Panel struct {
	Title  string
	Layers []Layer
	Legend bool
}

// Figure is a grid of panels rendered into one image.
type Figure struct {
	Width      int
	Height     int
	Background color.Color
	Rows       int
	Cols       int
	Panels     []Panel
}

// Draw renders the figure.
func (f Figure) Draw() (*image.RGBA, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, eris.Errorf("render: invalid figure size %dx%d", f.Width, f.Height)
	}
	rows, cols := f.Rows, f.Cols
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	if len(f.Panels) > rows*cols {
		return nil, eris.Errorf("render: %d panels do not fit a %dx%d grid", len(f.Panels), rows, cols)
	}

	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	bg := f.Background
	if bg == nil {
		bg = color.White
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	cw, ch := f.Width/cols, f.Height/rows
	for i, p := range f.Panels {
		r, c := i/cols, i%cols
		cell := image.Rect(c*cw, r*ch, (c+1)*cw, (r+1)*ch)
		if err := p.draw(img, cell); err != nil {
			return nil, eris.Wrapf(err, "render: panel %q", p.Title)
		}
	}
	return img, nil
}

func (p Panel) draw(img *image.RGBA, cell image.Rectangle) error {
	if p.Title != "" {
		drawCentered(img, p.Title, (cell.Min.X+cell.Max.X)/2, cell.Min.Y+titleHeight-margin, Ink)
	}

	plot := image.Rect(cell.Min.X+margin, cell.Min.Y+titleHeight, cell.Max.X-margin, cell.Max.Y-margin)

	legend, hasLegend := p.legendScale()
	if hasLegend {
		plot.Max.X -= legendWidth
		drawColorbar(img, legend, image.Rect(plot.Max.X, plot.Min.Y, cell.Max.X-margin, plot.Max.Y), Ink)
	}
	if plot.Dx() <= 0 || plot.Dy() <= 0 {
		return eris.New("panel too small")
	}

	b, ok := bounds(p.Layers)
	if !ok {
		return nil
	}
	proj := newProjection(b, plot)

	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return eris.Wrap(err, "raster context")
	}
	for _, l := range p.Layers {
		drawLayer(gc, proj, l)
	}
	return nil
}

func (p Panel) legendScale() (Scale, bool) {
	if !p.Legend {
		return Scale{}, false
	}
	for _, l := range p.Layers {
		if l.colormap() {
			return l.scale(), true
		}
	}
	return Scale{}, false
}

func drawLayer(gc *drawing.RasterGraphicContext, proj projection, l Layer) {
	var s Scale
	if l.colormap() {
		s = l.scale()
	}
	for _, sh := range l.Shapes {
		if sh.Geometry == nil {
			continue
		}
		fill := l.Fill
		if l.colormap() {
			if !sh.colored() {
				continue
			}
			fill = s.Color(sh.Value)
		}
		fillPolygons(gc, proj, sh.Geometry, fill, l.Edge, l.EdgeWidth)
	}
}

// fillPolygons fills each polygon of mp with the even-odd rule so holes
// stay open, then strokes its rings when edge is set.
func fillPolygons(gc *drawing.RasterGraphicContext, proj projection, mp *geom.MultiPolygon, fill, edge color.Color, width float64) {
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		gc.BeginPath()
		for j := 0; j < poly.NumLinearRings(); j++ {
			coords := poly.LinearRing(j).Coords()
			if len(coords) < 3 {
				continue
			}
			x, y := proj.xy(coords[0].X(), coords[0].Y())
			gc.MoveTo(x, y)
			for _, c := range coords[1:] {
				x, y = proj.xy(c.X(), c.Y())
				gc.LineTo(x, y)
			}
			gc.Close()
		}

		gc.SetFillRule(drawing.FillRuleEvenOdd)
		gc.SetFillColor(fill)
		if edge != nil && width > 0 {
			gc.SetStrokeColor(edge)
			gc.SetLineWidth(width)
			gc.FillStroke()
		} else {
			gc.Fill()
		}
	}
}
