package tract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/foodmap/internal/tiger"
)

var (
	// ErrDuplicateTract is returned when the geometry source repeats a tract identifier.
	ErrDuplicateTract = eris.New("duplicate tract identifier")
)

// Options configures Load.
type Options struct {
	TractIDField    string // geometry property holding the tract identifier (default CTIDFP00)
	AccessIDField   string // survey column holding the tract identifier (default CensusTract)
	AccessSheet     string // XLSX sheet name; empty selects the first sheet
	DropFirstColumn bool   // discard the survey's leading index column
	TempDir         string // scratch space for extracting zipped shapefiles
}

func (o *Options) defaults() {
	if o.TractIDField == "" {
		o.TractIDField = "CTIDFP00"
	}
	if o.AccessIDField == "" {
		o.AccessIDField = "CensusTract"
	}
}

// Load reads the tract geometry source and the food-access survey and
// left-joins them on tract identifier. Every geometry feature yields one
// Record; survey rows without a matching geometry are dropped.
func Load(ctx context.Context, geometryPath, accessPath string, opts Options) (*Table, error) {
	opts.defaults()
	log := zap.L().With(
		zap.String("component", "tract.loader"),
		zap.String("geometry", geometryPath),
		zap.String("access", accessPath),
	)

	features, err := readGeometry(ctx, geometryPath, opts.TempDir)
	if err != nil {
		return nil, err
	}
	log.Debug("geometry read", zap.Int("features", len(features)))

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "tract: load")
	}

	sv, err := readSurvey(ctx, accessPath, opts.AccessSheet, opts.AccessIDField, opts.DropFirstColumn)
	if err != nil {
		return nil, err
	}
	log.Debug("food access read", zap.Int("rows", sv.total))

	t, err := join(features, sv, opts.TractIDField)
	if err != nil {
		return nil, err
	}

	log.Info("tracts loaded",
		zap.Int("tracts", t.Len()),
		zap.Int("matched", t.Matched),
		zap.Int("survey_rows", t.SurveyRows),
		zap.Int("survey_unmatched", t.SurveyRows-sv.duplicates-t.Matched),
	)
	return t, nil
}

// join builds the unified table from geometry features and survey rows.
func join(features []feature, sv *survey, idField string) (*Table, error) {
	t := &Table{
		Records:    make([]Record, 0, len(features)),
		SurveyRows: sv.total,
		index:      make(map[string]int, len(features)),
	}

	for i, f := range features {
		id := strings.TrimSuffix(f.attrs.get(idField), ".0")
		if id == "" {
			return nil, eris.Errorf("tract: geometry feature %d has no %s", i, idField)
		}
		if _, dup := t.index[id]; dup {
			return nil, eris.Wrapf(ErrDuplicateTract, "tract: %s", id)
		}

		rec := Record{ID: id, Geometry: f.geometry}
		if err := rec.applyAttributes(f.attrs); err != nil {
			return nil, eris.Wrapf(err, "tract: geometry feature %s", id)
		}

		if rec.State == "" {
			rec.State = stateFromID(id)
		}

		if row, ok := sv.lookup(id); ok {
			if err := rec.applyAttributes(row); err != nil {
				return nil, eris.Wrapf(err, "tract: food access row %s", id)
			}
			access, err := parseAccess(row)
			if err != nil {
				return nil, eris.Wrapf(err, "tract: food access row %s", id)
			}
			rec.Access = access
			t.Matched++
		}

		t.index[id] = len(t.Records)
		t.Records = append(t.Records, rec)
	}

	return t, nil
}

// stateFromID derives the state abbreviation from a GEOID's 2-digit FIPS
// prefix. TIGER shapefiles carry STATEFP but no state name.
func stateFromID(id string) string {
	id = normalizeID(id)
	if len(id) < 2 {
		return ""
	}
	abbr, _ := tiger.AbbrFromFIPS(id[:2])
	return abbr
}

// applyAttributes copies the administrative and demographic attributes
// present in a; absent or empty values leave the record unchanged.
func (r *Record) applyAttributes(a attrs) error {
	if v := a.get(attrState); v != "" {
		r.State = v
	}
	if v := a.get(attrCounty); v != "" {
		r.County = v
	}

	for _, f := range []struct {
		column string
		dst    *Num
	}{
		{ColUrban, &r.Urban},
		{ColRural, &r.Rural},
		{ColPopulation, &r.Population},
	} {
		n, err := parseNum(a.get(f.column))
		if err != nil {
			return eris.Wrapf(err, "column %s", f.column)
		}
		if n.Valid {
			*f.dst = n
		}
	}
	return nil
}

func parseAccess(a attrs) (*FoodAccess, error) {
	fa := &FoodAccess{}
	for _, f := range []struct {
		column string
		dst    *Num
	}{
		{ColLAPopHalf, &fa.LAPopHalf},
		{ColLAPop10, &fa.LAPop10},
		{ColLALowIHalf, &fa.LALowIHalf},
		{ColLALowI10, &fa.LALowI10},
	} {
		n, err := parseNum(a.get(f.column))
		if err != nil {
			return nil, eris.Wrapf(err, "column %s", f.column)
		}
		*f.dst = n
	}
	return fa, nil
}
