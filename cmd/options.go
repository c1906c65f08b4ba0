package main

import (
	"image/color"

	"github.com/rotisserie/eris"

	"github.com/sells-group/foodmap/internal/config"
	"github.com/sells-group/foodmap/internal/render"
	"github.com/sells-group/foodmap/internal/report"
	"github.com/sells-group/foodmap/internal/tract"
)

func loadOptions(c *config.Config) tract.Options {
	return tract.Options{
		TractIDField:    c.Input.TractIDField,
		AccessIDField:   c.Input.AccessIDField,
		AccessSheet:     c.Input.AccessSheet,
		DropFirstColumn: c.Input.DropFirstColumn,
		TempDir:         c.Tiger.TempDir,
	}
}

func reportOptions(c *config.Config) (report.Options, error) {
	opts := report.Options{
		GeometryPath: c.Input.Geometry,
		AccessPath:   c.Input.Access,
		Load:         loadOptions(c),
		State:        c.Analysis.State,
		OutDir:       c.Output.Dir,
		Width:        c.Render.Width,
		Height:       c.Render.Height,
		Background:   color.White,
	}

	for _, f := range []struct {
		hex string
		dst *color.Color
	}{
		{c.Render.Background, &opts.TractFill},
		{c.Render.StateFill, &opts.StateFill},
		{c.Render.Highlight, &opts.Highlight},
	} {
		col, err := render.ParseHex(f.hex)
		if err != nil {
			return report.Options{}, eris.Wrap(err, "render options")
		}
		*f.dst = col
	}
	return opts, nil
}
