package report

import (
	"image/color"
	"math"

	"github.com/sells-group/foodmap/internal/render"
	"github.com/sells-group/foodmap/internal/tiger"
	"github.com/sells-group/foodmap/internal/tract"
)

const edgeWidth = 0.5

// maps builds the figures of one run.
type maps struct {
	opts  Options
	table *tract.Table
	state string // display name
}

// Default colors for unset Options fields.
var (
	DefaultTractFill = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	DefaultStateFill = color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF}
	DefaultHighlight = color.RGBA{R: 0x1F, G: 0x77, B: 0xB4, A: 0xFF}
)

// newMaps fills unset colors; a layer without a fill would be drawn as a
// colormap.
func newMaps(opts Options, tbl *tract.Table) *maps {
	if opts.TractFill == nil {
		opts.TractFill = DefaultTractFill
	}
	if opts.StateFill == nil {
		opts.StateFill = DefaultStateFill
	}
	if opts.Highlight == nil {
		opts.Highlight = DefaultHighlight
	}
	abbr, _ := tiger.StateAbbr(opts.State)
	return &maps{opts: opts, table: tbl, state: tiger.StateName(abbr)}
}

func (m *maps) figure(panels ...render.Panel) render.Figure {
	return render.Figure{
		Width:      m.opts.Width,
		Height:     m.opts.Height,
		Background: m.opts.Background,
		Panels:     panels,
	}
}

// base is every tract of the table in the neutral fill.
func (m *maps) base() render.Layer {
	return render.Layer{Shapes: outlines(m.table.Records), Fill: m.opts.TractFill}
}

// tracts draws every tract in one color.
func (m *maps) tracts() (render.Figure, error) {
	return m.figure(render.Panel{
		Title: m.state + " State",
		Layers: []render.Layer{{
			Shapes:    outlines(m.table.Records),
			Fill:      m.opts.Highlight,
			Edge:      color.White,
			EdgeWidth: edgeWidth,
		}},
	}), nil
}

// population colors the target state's tracts by population.
func (m *maps) population() (render.Figure, error) {
	layer, err := choropleth(m.table.InState(m.opts.State), tract.ColPopulation, nil)
	if err != nil {
		return render.Figure{}, err
	}
	return m.figure(render.Panel{
		Title:  m.state + " Census Tract Populations",
		Layers: []render.Layer{m.base(), layer},
		Legend: true,
	}), nil
}

// countyPopulation colors each tract by its county's population.
func (m *maps) countyPopulation(v *tract.CountyView) (render.Figure, error) {
	layer, err := choropleth(v.Rows, tract.ColPopulation+tract.CountySuffix, nil)
	if err != nil {
		return render.Figure{}, err
	}
	return m.figure(render.Panel{
		Title:  m.state + " County Populations",
		Layers: []render.Layer{m.base(), layer},
		Legend: true,
	}), nil
}

// foodAccessPanels lists the county ratio panels in grid order.
var foodAccessPanels = []struct {
	column string
	title  string
}{
	{tract.ColLAPopHalf + tract.RatioSuffix, "Low Access: Half"},
	{tract.ColLALowIHalf + tract.RatioSuffix, "Low Access + Low Income: Half"},
	{tract.ColLAPop10 + tract.RatioSuffix, "Low Access: 10"},
	{tract.ColLALowI10 + tract.RatioSuffix, "Low Access + Low Income: 10"},
}

// countyFoodAccess is a 2x2 grid of the county low-access ratios on a
// shared 0..1 scale.
func (m *maps) countyFoodAccess(v *tract.CountyView) (render.Figure, error) {
	fig := m.figure()
	fig.Rows, fig.Cols = 2, 2
	for _, p := range foodAccessPanels {
		layer, err := choropleth(v.Rows, p.column, &render.UnitScale)
		if err != nil {
			return render.Figure{}, err
		}
		fig.Panels = append(fig.Panels, render.Panel{
			Title:  p.title,
			Layers: []render.Layer{m.base(), layer},
			Legend: true,
		})
	}
	return fig, nil
}

// lowAccess draws the target state over every tract, then highlights every
// low-access tract in the table, in or out of the state.
func (m *maps) lowAccess(rows []tract.Classified) (render.Figure, error) {
	var state, flagged []render.Shape
	for _, r := range rows {
		sh := render.Shape{Geometry: r.Geometry}
		if r.InState(m.opts.State) {
			state = append(state, sh)
		}
		if r.LowAccess() {
			flagged = append(flagged, sh)
		}
	}
	return m.figure(render.Panel{
		Title: "Low Access Census Tracts",
		Layers: []render.Layer{
			m.base(),
			{Shapes: state, Fill: m.opts.StateFill},
			{Shapes: flagged, Fill: m.opts.Highlight},
		},
	}), nil
}

// choropleth builds a colormap layer from a column of rows. Null values
// become NaN and are left uncolored.
func choropleth[R tract.Row](rows []R, column string, scale *render.Scale) (render.Layer, error) {
	shapes := make([]render.Shape, 0, len(rows))
	for _, r := range rows {
		v, err := r.Value(column)
		if err != nil {
			return render.Layer{}, err
		}
		value := math.NaN()
		if v.Valid {
			value = v.Value
		}
		shapes = append(shapes, render.Shape{Geometry: r.Boundary(), Value: value})
	}
	return render.Layer{Shapes: shapes, Scale: scale}, nil
}

func outlines(records []tract.Record) []render.Shape {
	shapes := make([]render.Shape, len(records))
	for i, r := range records {
		shapes[i] = render.Shape{Geometry: r.Geometry}
	}
	return shapes
}
