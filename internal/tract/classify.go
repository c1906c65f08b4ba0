package tract

// Low-access thresholds for both distance branches.
const (
	LowAccessPopulation = 500
	LowAccessShare      = 0.33
)

// Classification is a tract's low-access flags. HalfMile is set for an
// urban tract low-access at 1/2 mile, TenMile for a rural tract low-access
// at 10 miles.
type Classification struct {
	HalfMile int
	TenMile  int
}

// Score is the sum of both flags: 0, 1, or 2.
func (c Classification) Score() int { return c.HalfMile + c.TenMile }

// LowAccess reports whether either branch flagged the tract.
func (c Classification) LowAccess() bool { return c.Score() != 0 }

// Classify applies the urban (1/2 mile) and rural (10 mile) low-access
// rules to a tract. Comparisons against a null value are false, so a tract
// without survey data or without a flag set scores 0.
func Classify(r Record) Classification {
	var c Classification
	if r.Urban.Is(1) && lowAccess(r.access(ColLAPopHalf), r.Population) {
		c.HalfMile = 1
	}
	if r.Rural.Is(1) && lowAccess(r.access(ColLAPop10), r.Population) {
		c.TenMile = 1
	}
	return c
}

func lowAccess(pop, total Num) bool {
	if !pop.Valid {
		return false
	}
	if pop.Value >= LowAccessPopulation {
		return true
	}
	share := ratio(pop, total)
	// NaN compares false.
	return share.Valid && share.Value >= LowAccessShare
}

// Classified is a tract row carrying its classification.
type Classified struct {
	Record
	Classification
}

// Value adds new_tracts_half, new_tracts_10, and low_access to the record's
// columns.
func (c Classified) Value(column string) (Num, error) {
	switch column {
	case ColNewTractsHalf:
		return Some(float64(c.HalfMile)), nil
	case ColNewTracts10:
		return Some(float64(c.TenMile)), nil
	case ColLowAccess:
		return Some(float64(c.Score())), nil
	}
	return c.Record.Value(column)
}

// ClassifyAll classifies every tract in the table, in table order.
func ClassifyAll(t *Table) []Classified {
	out := make([]Classified, len(t.Records))
	for i, r := range t.Records {
		out[i] = Classified{Record: r, Classification: Classify(r)}
	}
	return out
}
