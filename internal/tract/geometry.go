package tract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/foodmap/internal/tiger"
)

// attrs holds a feature's or survey row's attributes keyed by lower-cased
// name, so GeoJSON properties, .dbf fields, and CSV headers match alike.
type attrs map[string]string

func (a attrs) get(name string) string { return a[strings.ToLower(name)] }

func newAttrs(n int) attrs { return make(attrs, n) }

func (a attrs) set(name, value string) { a[strings.ToLower(strings.TrimSpace(name))] = value }

// feature is one geometry-source record before the join.
type feature struct {
	geometry *geom.MultiPolygon
	attrs    attrs
}

// readGeometry reads a tract geometry source. The format is chosen by file
// extension: GeoJSON (.json, .geojson), shapefile (.shp), or a ZIP holding
// a shapefile.
func readGeometry(ctx context.Context, path, tempDir string) ([]feature, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "tract: read geometry")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".geojson":
		return readGeoJSON(path)
	case ".shp":
		return readShapefile(path)
	case ".zip":
		return readShapefileZIP(path, tempDir)
	default:
		return nil, eris.Errorf("tract: unsupported geometry format %q", ext)
	}
}

func readGeoJSON(path string) ([]feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tract: open geometry %s", path)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "tract: decode GeoJSON %s", path)
	}

	features := make([]feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		mp, err := toMultiPolygon(f.Geometry)
		if err != nil {
			return nil, eris.Wrapf(err, "tract: feature %d", i)
		}
		a := newAttrs(len(f.Properties))
		for k, v := range f.Properties {
			a.set(k, propertyString(v))
		}
		features = append(features, feature{geometry: mp, attrs: a})
	}
	return features, nil
}

func readShapefile(path string) ([]feature, error) {
	shapes, err := tiger.ReadShapefile(path)
	if err != nil {
		return nil, eris.Wrap(err, "tract: read geometry")
	}

	features := make([]feature, len(shapes))
	for i, s := range shapes {
		a := newAttrs(len(s.Attributes))
		for k, v := range s.Attributes {
			a.set(k, v)
		}
		features[i] = feature{geometry: s.Geometry, attrs: a}
	}
	return features, nil
}

func readShapefileZIP(path, tempDir string) ([]feature, error) {
	if tempDir != "" {
		if err := os.MkdirAll(tempDir, 0o755); err != nil {
			return nil, eris.Wrap(err, "tract: create temp dir")
		}
	}
	dir, err := os.MkdirTemp(tempDir, "foodmap-geometry-*")
	if err != nil {
		return nil, eris.Wrap(err, "tract: create temp dir")
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			zap.L().Debug("tract: remove temp dir", zap.String("dir", dir), zap.Error(err))
		}
	}()

	shpPath, err := tiger.ExtractShapefile(path, dir)
	if err != nil {
		return nil, eris.Wrapf(err, "tract: open geometry %s", path)
	}
	return readShapefile(shpPath)
}

// toMultiPolygon normalizes a GeoJSON geometry to a multipolygon. A null
// geometry stays nil so the feature still counts as a row.
func toMultiPolygon(g geom.T) (*geom.MultiPolygon, error) {
	switch g := g.(type) {
	case nil:
		return nil, nil
	case *geom.MultiPolygon:
		return g, nil
	case *geom.Polygon:
		mp := geom.NewMultiPolygon(g.Layout())
		if err := mp.Push(g); err != nil {
			return nil, eris.Wrap(err, "wrap polygon")
		}
		return mp, nil
	default:
		return nil, eris.Errorf("unsupported geometry type %T", g)
	}
}

// propertyString renders a decoded GeoJSON property as the string a .dbf
// or CSV cell would hold.
func propertyString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(v)
	}
}
