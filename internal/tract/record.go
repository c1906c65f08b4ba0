// Package tract joins census-tract geometries with food-access survey data
// and derives the coverage, county, and low-access metrics drawn on maps.
package tract

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/foodmap/internal/tiger"
)

// FoodAccess holds the survey's low-access population counts for a tract.
type FoodAccess struct {
	LAPopHalf  Num // low-access population beyond 1/2 mile
	LAPop10    Num // low-access population beyond 10 miles
	LALowIHalf Num // low-income subset beyond 1/2 mile
	LALowI10   Num // low-income subset beyond 10 miles
}

// Record is one census tract after the join. Access is nil when the
// survey had no row for the tract.
type Record struct {
	ID         string
	Geometry   *geom.MultiPolygon
	State      string
	County     string
	Urban      Num
	Rural      Num
	Population Num
	Access     *FoodAccess
}

// HasAccessData reports whether the tract matched a survey row.
func (r Record) HasAccessData() bool { return r.Access != nil }

// InState reports whether the tract belongs to state, given either as a
// postal abbreviation or a full name.
func (r Record) InState(state string) bool {
	have, _ := tiger.StateAbbr(r.State)
	want, _ := tiger.StateAbbr(state)
	return have != "" && have == want
}

// Table is the unified tract table: one Record per geometry feature, in
// source order.
type Table struct {
	Records []Record

	// SurveyRows and Matched describe the join: how many survey rows were
	// read and how many of them found a geometry.
	SurveyRows int
	Matched    int

	index map[string]int
}

// Len returns the number of tracts.
func (t *Table) Len() int { return len(t.Records) }

// Lookup returns the record with the given tract identifier.
func (t *Table) Lookup(id string) (Record, bool) {
	i, ok := t.index[id]
	if !ok {
		return Record{}, false
	}
	return t.Records[i], true
}

// InState returns the records belonging to state, in table order.
func (t *Table) InState(state string) []Record {
	var out []Record
	for _, r := range t.Records {
		if r.InState(state) {
			out = append(out, r)
		}
	}
	return out
}
