package tract

// Coverage returns the percentage of tracts in state that carry food-access
// data. The denominator is the number of distinct tract identifiers in the
// whole table, not only those in state; with a multi-state geometry source
// the result is the state's share of all tracts, not its own coverage.
func Coverage(t *Table, state string) float64 {
	all := make(map[string]struct{}, t.Len())
	covered := make(map[string]struct{})
	for _, r := range t.Records {
		all[r.ID] = struct{}{}
		if r.InState(state) && r.HasAccessData() {
			covered[r.ID] = struct{}{}
		}
	}
	if len(all) == 0 {
		return 0
	}
	return float64(len(covered)) / float64(len(all)) * 100
}
