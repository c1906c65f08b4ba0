package tract

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Num is a nullable number. A zero Num is null: the value was absent in
// the source or the tract had no survey match. A valid Num may still hold
// NaN or ±Inf, e.g. a ratio over a zero population.
type Num struct {
	Value float64
	Valid bool
}

// Some returns a valid Num.
func Some(v float64) Num { return Num{Value: v, Valid: true} }

// Is reports whether n is valid and equal to v.
func (n Num) Is(v float64) bool { return n.Valid && n.Value == v }

// Or returns the value, or def when n is null.
func (n Num) Or(def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Value
}

// ratio divides num by den. Null in, null out; a zero denominator yields
// NaN or ±Inf rather than an error.
func ratio(num, den Num) Num {
	if !num.Valid || !den.Valid {
		return Num{}
	}
	return Some(num.Value / den.Value)
}

// parseNum parses a survey or attribute cell. Empty cells and the usual
// spreadsheet null markers are null.
func parseNum(s string) (Num, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "NA", "N/A", "NULL", "NAN", "NONE":
		return Num{}, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return Num{}, eris.Wrapf(err, "parse number %q", s)
	}
	return Some(v), nil
}
