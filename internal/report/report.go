// Package report runs the food-access pipeline end to end: load, measure
// coverage, aggregate counties, classify, and render the map set.
package report

import (
	"context"
	"image/color"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/foodmap/internal/render"
	"github.com/sells-group/foodmap/internal/tract"
)

// Output file names.
const (
	MapFile                 = "map.png"
	PopulationMapFile       = "population_map.png"
	CountyPopulationMapFile = "county_population_map.png"
	CountyFoodAccessFile    = "county_food_access.png"
	LowAccessFile           = "low_access.png"
)

// Options configures a run.
type Options struct {
	GeometryPath string
	AccessPath   string
	Load         tract.Options

	State  string // target state, abbreviation or full name
	OutDir string

	Width      int
	Height     int
	Background color.Color // canvas; white when nil
	TractFill  color.Color // tracts outside any choropleth
	StateFill  color.Color // target-state tracts on the low-access map
	Highlight  color.Color // plain tract map and low-access tracts
}

// Result summarizes a run.
type Result struct {
	RunID    string
	Coverage float64
	Tracts   int
	Counties int
	Files    []string
}

// Generate loads the inputs and writes the five maps into opts.OutDir.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{RunID: uuid.New().String()}
	log := zap.L().With(
		zap.String("component", "report"),
		zap.String("run_id", res.RunID),
		zap.String("state", opts.State),
	)

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "report: create output dir %s", opts.OutDir)
	}

	tbl, err := tract.Load(ctx, opts.GeometryPath, opts.AccessPath, opts.Load)
	if err != nil {
		return nil, eris.Wrap(err, "report: load")
	}
	res.Tracts = tbl.Len()
	res.Coverage = tract.Coverage(tbl, opts.State)
	log.Info("coverage computed", zap.Float64("coverage_pct", res.Coverage))

	m := newMaps(opts, tbl)
	counties := tract.AggregateCounties(tbl, opts.State)
	res.Counties = len(counties.Counties)
	classified := tract.ClassifyAll(tbl)

	steps := []struct {
		file  string
		build func() (render.Figure, error)
	}{
		{MapFile, m.tracts},
		{PopulationMapFile, m.population},
		{CountyPopulationMapFile, func() (render.Figure, error) { return m.countyPopulation(counties) }},
		{CountyFoodAccessFile, func() (render.Figure, error) { return m.countyFoodAccess(counties) }},
		{LowAccessFile, func() (render.Figure, error) { return m.lowAccess(classified) }},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "report: render")
		}
		path := filepath.Join(opts.OutDir, s.file)
		if err := write(path, s.build); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, path)
		log.Info("map written", zap.String("path", path))
	}

	return res, nil
}

func write(path string, build func() (render.Figure, error)) error {
	fig, err := build()
	if err != nil {
		return eris.Wrapf(err, "report: build %s", filepath.Base(path))
	}
	img, err := fig.Draw()
	if err != nil {
		return eris.Wrapf(err, "report: draw %s", filepath.Base(path))
	}
	return render.SavePNG(path, img)
}
