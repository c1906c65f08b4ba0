package render

import (
	"image"
	"math"

	"github.com/twpayne/go-geom"
)

// projection maps lon/lat onto a pixel rectangle. Longitude is scaled by
// the cosine of the mid latitude so shapes keep their ground proportions,
// and the bbox is fit into the rectangle without distortion.
type projection struct {
	minX, maxY float64
	kx, ky     float64 // pixels per degree
	ox, oy     float64
}

// bounds returns the extent of every shape in layers.
func bounds(layers []Layer) (*geom.Bounds, bool) {
	b := geom.NewBounds(geom.XY)
	var found bool
	for _, l := range layers {
		for _, sh := range l.Shapes {
			if sh.Geometry == nil || sh.Geometry.NumPolygons() == 0 {
				continue
			}
			b.Extend(sh.Geometry)
			found = true
		}
	}
	return b, found
}

func newProjection(b *geom.Bounds, area image.Rectangle) projection {
	minX, minY := b.Min(0), b.Min(1)
	maxX, maxY := b.Max(0), b.Max(1)

	aspect := 1 / math.Cos((minY+maxY)/2*math.Pi/180)
	if math.IsInf(aspect, 0) || math.IsNaN(aspect) || aspect <= 0 {
		aspect = 1
	}

	w := maxX - minX
	h := (maxY - minY) * aspect
	pw, ph := float64(area.Dx()), float64(area.Dy())

	s := 1.0
	switch {
	case w > 0 && h > 0:
		s = math.Min(pw/w, ph/h)
	case w > 0:
		s = pw / w
	case h > 0:
		s = ph / h
	}

	return projection{
		minX: minX,
		maxY: maxY,
		kx:   s,
		ky:   s * aspect,
		ox:   float64(area.Min.X) + (pw-w*s)/2,
		oy:   float64(area.Min.Y) + (ph-h*s)/2,
	}
}

func (p projection) xy(lon, lat float64) (float64, float64) {
	return p.ox + (lon-p.minX)*p.kx, p.oy + (p.maxY-lat)*p.ky
}
