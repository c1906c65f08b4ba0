package tract

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// Column names, as they appear in the survey and on derived rows.
const (
	ColPopulation = "POP2010"
	ColUrban      = "Urban"
	ColRural      = "Rural"
	ColLAPopHalf  = "lapophalf"
	ColLAPop10    = "lapop10"
	ColLALowIHalf = "lalowihalf"
	ColLALowI10   = "lalowi10"

	ColNewTractsHalf = "new_tracts_half"
	ColNewTracts10   = "new_tracts_10"
	ColLowAccess     = "low_access"

	RatioSuffix  = "_ratio"
	TractSuffix  = "_tracts"
	CountySuffix = "_county"
)

// Attribute names read from the geometry properties and the survey.
const (
	attrState  = "State"
	attrCounty = "County"
)

// SummedColumns are the columns summed per county. After the county join
// they exist on both sides and are only addressable with a suffix.
var SummedColumns = []string{ColPopulation, ColLAPopHalf, ColLAPop10, ColLALowIHalf, ColLALowI10}

// AccessColumns are the survey's low-access population columns.
var AccessColumns = []string{ColLAPopHalf, ColLAPop10, ColLALowIHalf, ColLALowI10}

var (
	// ErrUnknownColumn is returned for a column name no row type defines.
	ErrUnknownColumn = eris.New("unknown column")
	// ErrAmbiguousColumn is returned for a bare column name that exists at
	// both tract and county level after the county join.
	ErrAmbiguousColumn = eris.New("ambiguous column")
)

// Row is a tract-shaped row a map layer can be drawn from.
type Row interface {
	TractID() string
	Boundary() *geom.MultiPolygon
	Value(column string) (Num, error)
}

// TractID implements Row.
func (r Record) TractID() string { return r.ID }

// Boundary implements Row.
func (r Record) Boundary() *geom.MultiPolygon { return r.Geometry }

// Value returns a loaded column or a per-tract ratio (<access column>_ratio,
// over POP2010). Food-access columns are null for unmatched tracts.
func (r Record) Value(column string) (Num, error) {
	switch column {
	case ColPopulation:
		return r.Population, nil
	case ColUrban:
		return r.Urban, nil
	case ColRural:
		return r.Rural, nil
	}

	for _, c := range AccessColumns {
		switch column {
		case c:
			return r.access(c), nil
		case c + RatioSuffix:
			return ratio(r.access(c), r.Population), nil
		}
	}

	return Num{}, eris.Wrapf(ErrUnknownColumn, "tract: column %q", column)
}

func (r Record) access(column string) Num {
	if r.Access == nil {
		return Num{}
	}
	switch column {
	case ColLAPopHalf:
		return r.Access.LAPopHalf
	case ColLAPop10:
		return r.Access.LAPop10
	case ColLALowIHalf:
		return r.Access.LALowIHalf
	case ColLALowI10:
		return r.Access.LALowI10
	}
	return Num{}
}
