package tract

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// CountyStats holds one county's summed populations and low-access ratios.
// Sums treat null cells as zero. Ratios divide by Population and are NaN
// or ±Inf for a county with zero population.
type CountyStats struct {
	Name   string
	Tracts int

	Population float64
	LAPopHalf  float64
	LAPop10    float64
	LALowIHalf float64
	LALowI10   float64

	LAPopHalfRatio  float64
	LAPop10Ratio    float64
	LALowIHalfRatio float64
	LALowI10Ratio   float64
}

// Value returns a county column by its bare name (POP2010, lapophalf, ...,
// lapophalf_ratio, ...).
func (c CountyStats) Value(column string) (float64, bool) {
	switch column {
	case ColPopulation:
		return c.Population, true
	case ColLAPopHalf:
		return c.LAPopHalf, true
	case ColLAPop10:
		return c.LAPop10, true
	case ColLALowIHalf:
		return c.LALowIHalf, true
	case ColLALowI10:
		return c.LALowI10, true
	case ColLAPopHalf + RatioSuffix:
		return c.LAPopHalfRatio, true
	case ColLAPop10 + RatioSuffix:
		return c.LAPop10Ratio, true
	case ColLALowIHalf + RatioSuffix:
		return c.LALowIHalfRatio, true
	case ColLALowI10 + RatioSuffix:
		return c.LALowI10Ratio, true
	}
	return 0, false
}

// CountyRow is a tract row with its county's stats attached. Stats is nil
// for a tract without a county name.
type CountyRow struct {
	Record
	Stats *CountyStats
}

// Value resolves columns after the county join. The summed columns exist
// on both sides, so they take a suffix: POP2010_tracts is the tract's own
// population, POP2010_county the county total; the bare name is
// ambiguous. Ratio columns are county-level. Anything else falls through
// to the tract record.
func (r CountyRow) Value(column string) (Num, error) {
	for _, c := range SummedColumns {
		switch column {
		case c:
			return Num{}, eris.Wrapf(ErrAmbiguousColumn, "tract: column %q (use %q or %q)",
				column, c+TractSuffix, c+CountySuffix)
		case c + TractSuffix:
			return r.Record.Value(c)
		case c + CountySuffix:
			return r.county(c), nil
		}
	}
	if strings.HasSuffix(column, RatioSuffix) {
		if _, ok := (CountyStats{}).Value(column); ok {
			return r.county(column), nil
		}
	}
	return r.Record.Value(column)
}

func (r CountyRow) county(column string) Num {
	if r.Stats == nil {
		return Num{}
	}
	v, ok := r.Stats.Value(column)
	if !ok {
		return Num{}
	}
	return Some(v)
}

// CountyView is the county aggregation of one state.
type CountyView struct {
	State    string
	Counties []CountyStats // sorted by name
	Rows     []CountyRow   // every tract in State, in table order
}

// County returns the stats for a county by name.
func (v *CountyView) County(name string) (CountyStats, bool) {
	i := sort.Search(len(v.Counties), func(i int) bool { return v.Counties[i].Name >= name })
	if i < len(v.Counties) && v.Counties[i].Name == name {
		return v.Counties[i], true
	}
	return CountyStats{}, false
}

// AggregateCounties groups the tracts of state by county, sums population
// and the low-access columns, computes the four county ratios, and attaches
// each county's stats back onto its tracts. Tracts without a county name
// are kept as rows but belong to no county.
func AggregateCounties(t *Table, state string) *CountyView {
	tracts := t.InState(state)

	byName := make(map[string]*CountyStats)
	for _, r := range tracts {
		if r.County == "" {
			continue
		}
		c, ok := byName[r.County]
		if !ok {
			c = &CountyStats{Name: r.County}
			byName[r.County] = c
		}
		c.Tracts++
		c.Population += r.Population.Or(0)
		c.LAPopHalf += r.access(ColLAPopHalf).Or(0)
		c.LAPop10 += r.access(ColLAPop10).Or(0)
		c.LALowIHalf += r.access(ColLALowIHalf).Or(0)
		c.LALowI10 += r.access(ColLALowI10).Or(0)
	}

	view := &CountyView{
		State:    state,
		Counties: make([]CountyStats, 0, len(byName)),
		Rows:     make([]CountyRow, 0, len(tracts)),
	}
	for _, c := range byName {
		c.LAPopHalfRatio = c.LAPopHalf / c.Population
		c.LAPop10Ratio = c.LAPop10 / c.Population
		c.LALowIHalfRatio = c.LALowIHalf / c.Population
		c.LALowI10Ratio = c.LALowI10 / c.Population
		view.Counties = append(view.Counties, *c)
	}
	sort.Slice(view.Counties, func(i, j int) bool { return view.Counties[i].Name < view.Counties[j].Name })

	for _, r := range tracts {
		row := CountyRow{Record: r}
		if c, ok := byName[r.County]; ok {
			row.Stats = c
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}
