package tract

import (
	"archive/zip"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

type fixtureTract struct {
	id     string
	state  string
	county string
	urban  int
	rural  int
	pop    int
	x, y   float64 // lower-left corner of a 1x1 degree square
}

// Alpha has two tracts (100 + 200), Beta one (300); the Oregon tract sits
// outside the target state.
var fixtureTracts = []fixtureTract{
	{id: "53001000100", state: "WA", county: "Alpha", urban: 1, pop: 100, x: -120, y: 46},
	{id: "53001000200", state: "WA", county: "Alpha", urban: 1, pop: 200, x: -119, y: 46},
	{id: "53003000100", state: "WA", county: "Beta", rural: 1, pop: 300, x: -118, y: 46},
	{id: "41001000100", state: "OR", county: "Baker", urban: 1, pop: 1000, x: -118, y: 44},
}

var fixtureSurveyHeader = []string{"Unnamed: 0", "CensusTract", "State", "County", "lapophalf", "lapop10", "lalowihalf", "lalowi10"}

// fixtureSurvey matches every tract but 53001000200 and carries one row
// without a geometry.
var fixtureSurvey = [][]string{
	{"0", "53001000100", "WA", "Alpha", "40", "0", "10", "0"},
	{"1", "53003000100", "WA", "Beta", "30", "120", "NA", "60"},
	{"2", "41001000100", "OR", "Baker", "600", "0", "200", "0"},
	{"3", "53099999999", "WA", "Nowhere", "1", "1", "1", "1"},
}

func squareRing(x, y float64) []geom.Coord {
	return []geom.Coord{{x, y}, {x, y + 1}, {x + 1, y + 1}, {x + 1, y}, {x, y}}
}

func writeGeoJSON(t *testing.T, tracts []fixtureTract) string {
	t.Helper()
	fc := geojson.FeatureCollection{}
	for _, tr := range tracts {
		poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{squareRing(tr.x, tr.y)})
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: poly,
			Properties: map[string]any{
				"CTIDFP00": tr.id,
				"State":    tr.state,
				"County":   tr.county,
				"Urban":    tr.urban,
				"Rural":    tr.rural,
				"POP2010":  tr.pop,
			},
		})
	}
	data, err := json.Marshal(&fc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tracts.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeShapefile(t *testing.T, dir string, tracts []fixtureTract) string {
	t.Helper()
	path := filepath.Join(dir, "tracts.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("CTIDFP00", 11),
		shp.StringField("State", 2),
		shp.StringField("County", 20),
		shp.NumberField("Urban", 1),
		shp.NumberField("Rural", 1),
		shp.NumberField("POP2010", 10),
	}))
	for _, tr := range tracts {
		x, y := tr.x, tr.y
		pl := shp.NewPolyLine([][]shp.Point{{
			{X: x, Y: y}, {X: x, Y: y + 1}, {X: x + 1, Y: y + 1}, {X: x + 1, Y: y}, {X: x, Y: y},
		}})
		poly := shp.Polygon(*pl)
		n := int(w.Write(&poly))
		require.NoError(t, w.WriteAttribute(n, 0, tr.id))
		require.NoError(t, w.WriteAttribute(n, 1, tr.state))
		require.NoError(t, w.WriteAttribute(n, 2, tr.county))
		require.NoError(t, w.WriteAttribute(n, 3, strconv.Itoa(tr.urban)))
		require.NoError(t, w.WriteAttribute(n, 4, strconv.Itoa(tr.rural)))
		require.NoError(t, w.WriteAttribute(n, 5, strconv.Itoa(tr.pop)))
	}
	w.Close()

	// go-shp v0.1.1 writes the attribute table to "<name>dbf", without the dot.
	base := strings.TrimSuffix(path, ".shp")
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	return path
}

// writeShapefileZIP zips the shapefile components written by writeShapefile.
func writeShapefileZIP(t *testing.T, tracts []fixtureTract) string {
	t.Helper()
	shpPath := writeShapefile(t, t.TempDir(), tracts)

	zipPath := filepath.Join(t.TempDir(), "tracts.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	zw := zip.NewWriter(f)
	base := shpPath[:len(shpPath)-len(".shp")]
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		src, err := os.Open(base + ext)
		require.NoError(t, err)
		dst, err := zw.Create("tracts" + ext)
		require.NoError(t, err)
		_, err = io.Copy(dst, src)
		require.NoError(t, err)
		require.NoError(t, src.Close())
	}
	require.NoError(t, zw.Close())
	return zipPath
}

func writeCSV(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "food_access.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(header))
	require.NoError(t, w.WriteAll(rows))
	return path
}

func writeXLSX(t *testing.T, sheet string, header []string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sh, err := f.AddSheet(sheet)
	require.NoError(t, err)
	for _, data := range append([][]string{header}, rows...) {
		row := sh.AddRow()
		for _, v := range data {
			row.AddCell().SetString(v)
		}
	}
	path := filepath.Join(t.TempDir(), "food_access.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

// loadFixture loads the GeoJSON and CSV fixtures.
func loadFixture(t *testing.T) *Table {
	t.Helper()
	tbl, err := Load(t.Context(),
		writeGeoJSON(t, fixtureTracts),
		writeCSV(t, fixtureSurveyHeader, fixtureSurvey),
		Options{DropFirstColumn: true},
	)
	require.NoError(t, err)
	return tbl
}
