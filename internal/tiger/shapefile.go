package tiger

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// Shape is one shapefile record: its boundary and its attributes keyed by
// field name as written in the .dbf.
type Shape struct {
	Geometry   *geom.MultiPolygon
	Attributes map[string]string
}

// ReadShapefile reads every record of a polygon shapefile and its .dbf
// attribute table. A missing .dbf or a truncated .shp is an error. Records
// whose geometry is missing or unusable are kept with a nil Geometry so
// callers see one Shape per record.
func ReadShapefile(shpPath string) ([]Shape, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "tiger: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	// go-shp reads the attribute table lazily and yields no fields when it
	// is absent.
	dbfPath := strings.TrimSuffix(shpPath, filepath.Ext(shpPath)) + ".dbf"
	if _, err := os.Stat(dbfPath); err != nil {
		return nil, eris.Wrapf(err, "tiger: open dbf %s", dbfPath)
	}

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	var shapes []Shape
	var missing int

	for reader.Next() {
		_, shape := reader.Shape()

		attrs := make(map[string]string, len(names))
		for i, name := range names {
			val := strings.TrimRight(reader.Attribute(i), "\x00")
			attrs[name] = strings.TrimSpace(val)
		}

		mp := ShapeToMultiPolygon(shape)
		if mp == nil {
			missing++
		}
		shapes = append(shapes, Shape{Geometry: mp, Attributes: attrs})
	}

	if err := reader.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, eris.Wrapf(err, "tiger: read shapefile %s", shpPath)
	}

	if missing > 0 {
		zap.L().Debug("tiger: shapefile records without usable geometry",
			zap.String("path", shpPath),
			zap.Int("missing", missing),
		)
	}

	return shapes, nil
}
